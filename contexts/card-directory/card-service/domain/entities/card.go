package entities

import (
	"slices"
	"time"
)

const (
	DefaultAddressState = "not defined"
	DefaultImageAlt     = "business card image"
)

type Address struct {
	State       string
	Country     string
	City        string
	Street      string
	HouseNumber int
	Zip         int
}

type Image struct {
	URL string
	Alt string
}

// Content is the owner-editable part of a card.
type Content struct {
	Title       string
	Subtitle    string
	Description string
	Phone       string
	Email       string
	Web         string
	Image       *Image
	Address     Address
}

// WithDefaults fills the optional fields a stored card always carries.
func (c Content) WithDefaults() Content {
	if c.Address.State == "" {
		c.Address.State = DefaultAddressState
	}
	if c.Image != nil {
		image := *c.Image
		if image.Alt == "" {
			image.Alt = DefaultImageAlt
		}
		c.Image = &image
	}
	return c
}

// Card is a published listing. OwnerID never changes after creation and
// Likes holds each liking user id at most once.
type Card struct {
	CardID    string
	Content   Content
	Likes     []string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Card) LikedBy(userID string) bool {
	return slices.Contains(c.Likes, userID)
}
