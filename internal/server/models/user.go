package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and must never
// leave the server.
type User struct {
	ID           UserID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Seller is the public projection of a User attached to products.
type Seller struct {
	ID    UserID
	Name  string
	Email string
}

// Seller returns the public projection of u.
func (u *User) Seller() *Seller {
	return &Seller{ID: u.ID, Name: u.Name, Email: u.Email}
}
