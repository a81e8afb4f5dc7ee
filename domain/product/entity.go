// Package product defines the tracked-product entity and its persistence.
package product

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a product does not exist within the acting
// user's scope.
var ErrNotFound = errors.New("product not found")

// PricePoint is one observed price at a point in time.
type PricePoint struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// PriceHistory is the append-only sequence of observed prices, oldest first.
type PriceHistory []PricePoint

// Product is an item a user tracks the price of. CurrentPrice mirrors the
// last History entry whenever History is non-empty; a product created with
// a failed scrape has CurrentPrice 0 and an empty History.
type Product struct {
	ID           string       `gorm:"primaryKey;type:text" json:"id"`
	UserID       string       `gorm:"index;not null;type:text" json:"user_id"`
	Name         string       `gorm:"not null" json:"name"`
	URL          string       `gorm:"not null" json:"url"`
	Platform     string       `json:"platform"`
	TargetPrice  float64      `json:"target_price"`
	CurrentPrice float64      `json:"current_price"`
	History      PriceHistory `gorm:"serializer:json" json:"history"`
	Views        int          `json:"views"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName returns the table name for the Product entity.
func (Product) TableName() string {
	return "products"
}

// RecordPrice appends a price observation and keeps CurrentPrice in sync.
func (p *Product) RecordPrice(price float64, at time.Time) {
	p.History = append(p.History, PricePoint{Price: price, Timestamp: at})
	p.CurrentPrice = price
}

// CreateProductRequest carries the fields accepted on product creation.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Platform    string  `json:"platform"`
	TargetPrice float64 `json:"target_price"`
}

// UpdateProductRequest carries a partial field set to merge into an existing
// product. Nil fields are left untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	URL         *string  `json:"url"`
	Platform    *string  `json:"platform"`
	TargetPrice *float64 `json:"target_price"`
}
