package entities

import "time"

type Address struct {
	State       string
	Country     string
	City        string
	Street      string
	HouseNumber int
	Zip         int
}

type User struct {
	UserID       string
	Email        string
	Name         string
	PasswordHash string
	Phone        string
	Address      *Address
	IsAdmin      bool
	IsBusiness   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the reduced view a caller gets of their own account.
type Profile struct {
	UserID  string
	Email   string
	Name    string
	IsAdmin bool
}

func (u User) Profile() Profile {
	return Profile{
		UserID:  u.UserID,
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
	}
}

// ProfileUpdate carries the fields a user may change about themselves.
// Email, password and flags are deliberately absent.
type ProfileUpdate struct {
	Name    string
	Phone   string
	Address *Address
}
