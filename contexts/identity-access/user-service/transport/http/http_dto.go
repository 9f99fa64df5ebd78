package httptransport

import "time"

// AddressDTO is the postal address shared by user requests and responses.
type AddressDTO struct {
	State       string `json:"state,omitempty" validate:"omitempty,max=256"`
	Country     string `json:"country" validate:"required,min=2,max=256"`
	City        string `json:"city" validate:"required,min=2,max=256"`
	Street      string `json:"street" validate:"required,min=2,max=256"`
	HouseNumber int    `json:"houseNumber" validate:"required,min=1"`
	Zip         int    `json:"zip,omitempty" validate:"gte=0"`
}

// RegisterUserRequest is the body of POST /api/users. isAdmin is not accepted.
type RegisterUserRequest struct {
	Email      string      `json:"email" validate:"required,email,min=6,max=256"`
	Password   string      `json:"password" validate:"required,min=8,max=1024" trim:"-"`
	Name       string      `json:"name,omitempty" validate:"omitempty,min=2,max=256"`
	Phone      string      `json:"phone" validate:"required,phone"`
	Address    *AddressDTO `json:"address,omitempty" validate:"omitempty"`
	IsBusiness bool        `json:"isBusiness,omitempty"`
}

func (RegisterUserRequest) SchemaID() string { return "register_user" }

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required" trim:"-"`
}

func (LoginRequest) SchemaID() string { return "login" }

// UpdateUserRequest replaces the mutable profile fields of a user.
type UpdateUserRequest struct {
	Name    string      `json:"name" validate:"required,min=2,max=256"`
	Phone   string      `json:"phone" validate:"required,phone"`
	Address *AddressDTO `json:"address" validate:"required"`
}

func (UpdateUserRequest) SchemaID() string { return "update_user" }

type UserResponse struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Name       string      `json:"name,omitempty"`
	Phone      string      `json:"phone,omitempty"`
	Address    *AddressDTO `json:"address,omitempty"`
	IsAdmin    bool        `json:"isAdmin"`
	IsBusiness bool        `json:"isBusiness"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// AuthResponse is returned by registration.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ProfileResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
