package docstore

import (
	"time"

	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
)

type userDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"createdAt"`
}

type productDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Price       float64   `bson:"price"`
	Image       string    `bson:"image"`
	Seller      string    `bson:"seller"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"createdAt"`

	// filled by the $lookup stage, never stored
	SellerDocs []userDoc `bson:"sellerDocs,omitempty"`
}

func newUserDoc(u *models.User) userDoc {
	return userDoc{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		CreatedAt: u.CreatedAt,
	}
}

func (d userDoc) model() *models.User {
	return &models.User{
		ID:           models.UserID(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
}

func newProductDoc(p *models.Product) productDoc {
	return productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Seller:      p.SellerID.String(),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

func (d productDoc) model() *models.Product {
	p := &models.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Image:       d.Image,
		SellerID:    models.UserID(d.Seller),
		Status:      models.ProductStatus(d.Status),
		CreatedAt:   d.CreatedAt,
	}
	if len(d.SellerDocs) > 0 {
		p.Seller = d.SellerDocs[0].model().Seller()
	}
	return p
}
