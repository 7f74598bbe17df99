package customer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"dispatcher/internal/entities"
)

type Registry struct {
	mu        sync.RWMutex
	customers map[string]*entities.Customer
	clock     Clock
}

func New(clock Clock) *Registry {
	return &Registry{
		customers: make(map[string]*entities.Customer),
		clock:     clock,
	}
}

// Onboard добавляет клиента, если его еще нет, иначе возвращает существующего.
func (r *Registry) Onboard(ctx context.Context, customerModify entities.CustomerModify) (*entities.Customer, error) {
	if customerModify.ID == nil || customerModify.Name == nil {
		return nil, ErrMissingRequiredFields
	}
	id := strings.TrimSpace(*customerModify.ID)
	if id == "" {
		return nil, ErrInvalidCustomerID
	}
	name := strings.TrimSpace(*customerModify.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.customers[id]; ok {
		clone := *existing
		return &clone, nil
	}

	customer := &entities.Customer{
		ID:        id,
		Name:      name,
		CreatedAt: r.clock.Now().UTC(),
	}
	r.customers[id] = customer

	clone := *customer
	return &clone, nil
}

func (r *Registry) Get(ctx context.Context, customerID string) (*entities.Customer, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, ErrInvalidCustomerID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("get customer %s: %w", customerID, ErrCustomerNotFound)
	}
	clone := *customer
	return &clone, nil
}

func (r *Registry) List(ctx context.Context) ([]entities.Customer, error) {
	r.mu.RLock()
	customers := make([]entities.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		customers = append(customers, *customer)
	}
	r.mu.RUnlock()

	sort.Slice(customers, func(i, j int) bool {
		return customers[i].ID < customers[j].ID
	})
	return customers, nil
}

func (r *Registry) Restore(ctx context.Context, customers []entities.Customer) error {
	restored := make(map[string]*entities.Customer, len(customers))
	for i := range customers {
		customer := customers[i]
		if strings.TrimSpace(customer.ID) == "" {
			return fmt.Errorf("restore customer: %w", ErrInvalidCustomerID)
		}
		restored[customer.ID] = &customer
	}

	r.mu.Lock()
	r.customers = restored
	r.mu.Unlock()

	return nil
}
