package models

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Author      string         `json:"author"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Condition   string         `json:"condition"`
	Language    string         `json:"language"`
	Image       string         `json:"image"`
	Location    string         `json:"location"`
	UpiID       string         `json:"upi_id"`
	Phone       string         `json:"phone"`
	Edition     string         `json:"edition,omitempty"`
	Pages       *int           `json:"pages,omitempty"`
	Category    string         `json:"category"`
	SellerID    uuid.UUID      `json:"seller_id"`
	Seller      *PublicProfile `json:"seller,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// BookFilter collects the optional list-query filters.
// All set fields combine with AND.
type BookFilter struct {
	Search    string
	Condition string
	Language  string
	Category  string
	Location  string
	MinPrice  *float64
	MaxPrice  *float64
}

// UpdateBookRequest carries the fields a seller may change on a listing.
// Nil means "leave as is".
type UpdateBookRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1"`
	Author      *string  `json:"author,omitempty" validate:"omitempty,min=1"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Condition   *string  `json:"condition,omitempty" validate:"omitempty,oneof=new like-new good fair poor"`
	Language    *string  `json:"language,omitempty" validate:"omitempty,oneof=english hindi other"`
	Location    *string  `json:"location,omitempty"`
	UpiID       *string  `json:"upi_id,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Edition     *string  `json:"edition,omitempty"`
	Pages       *int     `json:"pages,omitempty" validate:"omitempty,gt=0"`
	Category    *string  `json:"category,omitempty"`
}
