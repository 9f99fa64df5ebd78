package httptransport

import "time"

type ImageDTO struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt,omitempty" validate:"omitempty,max=256"`
}

type AddressDTO struct {
	State       string `json:"state,omitempty" validate:"omitempty,min=2,max=256"`
	Country     string `json:"country" validate:"required,min=2,max=256"`
	City        string `json:"city" validate:"required,min=2,max=256"`
	Street      string `json:"street" validate:"required,min=2,max=256"`
	HouseNumber int    `json:"houseNumber" validate:"required,min=1"`
	Zip         int    `json:"zip,omitempty" validate:"gte=0"`
}

// CardContentDTO is the shared body of card create and update. userId and
// likes are not accepted. Card phones are bare digits, unlike user phones.
type CardContentDTO struct {
	Title       string      `json:"title" validate:"required,min=2,max=256"`
	Subtitle    string      `json:"subtitle,omitempty" validate:"omitempty,min=2,max=256"`
	Description string      `json:"description" validate:"required,min=10,max=1024"`
	Phone       string      `json:"phone" validate:"required,card_phone"`
	Email       string      `json:"email" validate:"required,email"`
	Web         string      `json:"web,omitempty" validate:"omitempty,url"`
	Image       *ImageDTO   `json:"image,omitempty" validate:"omitempty"`
	Address     *AddressDTO `json:"address" validate:"required"`
}

type CreateCardRequest CardContentDTO

func (CreateCardRequest) SchemaID() string { return "create_card" }

type UpdateCardRequest CardContentDTO

func (UpdateCardRequest) SchemaID() string { return "update_card" }

type CardResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Description string     `json:"description"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Web         string     `json:"web"`
	Image       *ImageDTO  `json:"image,omitempty"`
	Address     AddressDTO `json:"address"`
	Likes       []string   `json:"likes"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
