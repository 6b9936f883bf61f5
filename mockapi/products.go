package mockapi

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-invoice-client/apiclient"
)

type ProductRepo interface {
	Add(userID string, p apiclient.NewProduct) apiclient.RemoteProduct
	List(userID string) []apiclient.RemoteProduct
}

var _ ProductRepo = (*InMemoryProductRepo)(nil)

// InMemoryProductRepo keeps each user's products in insertion order
type InMemoryProductRepo struct {
	mu       sync.RWMutex
	products map[string][]apiclient.RemoteProduct // userID -> products
}

func NewInMemoryProductRepo() *InMemoryProductRepo {
	return &InMemoryProductRepo{products: make(map[string][]apiclient.RemoteProduct)}
}

func (r *InMemoryProductRepo) Add(userID string, p apiclient.NewProduct) apiclient.RemoteProduct {
	rp := apiclient.RemoteProduct{
		ProductName: p.ProductName,
		Price:       p.Price,
		Quantity:    p.Quantity,
		ID:          uuid.New().String(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[userID] = append(r.products[userID], rp)
	return rp
}

func (r *InMemoryProductRepo) List(userID string) []apiclient.RemoteProduct {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]apiclient.RemoteProduct{}, r.products[userID]...)
}
