// Package memstore keeps users and products in process memory. It implements
// the same repository contracts as the database stores. It serves memory://
// DSNs and the service and HTTP tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
)

type Users struct {
	mu     sync.Mutex
	byID   map[models.UserID]*models.User
	writes int

	// Err, when set, is returned by every call.
	Err error
}

func NewUsers() *Users {
	return &Users{byID: map[models.UserID]*models.User{}}
}

// Put stores u without any checks.
func (m *Users) Put(u *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.byID[u.ID] = &cp
}

// Writes counts Create calls, failed ones included.
func (m *Users) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Users) Create(_ context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.Err != nil {
		return nil, m.Err
	}
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	return u, nil
}

func (m *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *Users) GetByID(_ context.Context, id models.UserID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

// Products resolves sellers from the Users it was built with.
type Products struct {
	mu     sync.Mutex
	byID   map[string]*models.Product
	users  *Users
	writes int

	// Err, when set, is returned by every call.
	Err error
}

func NewProducts(users *Users) *Products {
	return &Products{byID: map[string]*models.Product{}, users: users}
}

// Writes counts Create, UpdateStatus and Delete calls, failed ones included.
func (m *Products) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Products) resolve(p *models.Product) *models.Product {
	cp := *p
	if m.users != nil {
		if u, err := m.users.GetByID(context.Background(), p.SellerID); err == nil {
			cp.Seller = u.Seller()
		}
	}
	return &cp
}

func (m *Products) List(_ context.Context) ([]*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*models.Product, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, m.resolve(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Products) Get(_ context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m.resolve(p), nil
}

func (m *Products) Create(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.Err != nil {
		return m.Err
	}
	cp := *p
	cp.Seller = nil
	m.byID[p.ID] = &cp
	return nil
}

func (m *Products) UpdateStatus(_ context.Context, id string, status models.ProductStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.Err != nil {
		return m.Err
	}
	p, ok := m.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.Status = status
	return nil
}

func (m *Products) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.byID, id)
	return nil
}
