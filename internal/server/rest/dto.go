package rest

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/services"
)

type sellerDTO struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type productDTO struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Image       string     `json:"image"`
	Seller      *sellerDTO `json:"seller"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type userDTO struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type productResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Product *productDTO `json:"product,omitempty"`
}

type authResult struct {
	Token string   `json:"token"`
	User  *userDTO `json:"user"`
}

type uploadResult struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	ImageURL  string `json:"imageUrl"`
}

// createProductRequest keeps price raw; it may be a JSON number or string.
type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Image       string          `json:"image"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r createProductRequest) input() services.CreateProductInput {
	return services.CreateProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       priceText(r.Price),
		Image:       r.Image,
	}
}

// priceText returns the textual form of a raw JSON price; null and absent
// both become "".
func priceText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func toSellerDTO(s *models.Seller) *sellerDTO {
	if s == nil {
		return nil
	}
	return &sellerDTO{ID: s.ID.String(), Name: s.Name, Email: s.Email}
}

func toProductDTO(p *models.Product) *productDTO {
	return &productDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Seller:      toSellerDTO(p.Seller),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

func toUserDTO(u *models.User) *userDTO {
	return &userDTO{ID: u.ID.String(), Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}
