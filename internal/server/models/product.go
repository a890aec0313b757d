// Package models defines server-side data models persisted in the store.
package models

import "time"

// ProductStatus is the listing state of a product.
type ProductStatus string

const (
	ProductAvailable ProductStatus = "available"
	ProductSold      ProductStatus = "sold"
)

// Product is a marketplace listing.
//
// SellerID is always set. Seller is the resolved public projection and is
// filled in by read paths only; it may be nil when the seller account is gone.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Image       string
	SellerID    UserID
	Seller      *Seller
	Status      ProductStatus
	CreatedAt   time.Time
}
