// Package admin holds the back-office record managers and dashboard.
package admin

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Domenick1991/skyjourney/internal/catalog"
	"github.com/Domenick1991/skyjourney/internal/domain"
)

var ErrNotConfirmed = errors.New("deletion requires confirmation")

// Entity is a record addressed by a synthetic string id.
type Entity[T any] interface {
	EntityID() string
	WithEntityID(id string) T
}

// ListQuery combines search, sort and pagination for a manager listing.
type ListQuery struct {
	Filter catalog.Filter
	Order  catalog.Order
	Page   catalog.Page
}

type ListResult[T any] struct {
	Items []T           `json:"items"`
	Total int           `json:"total"`
	Page  catalog.Page  `json:"page"`
	Order catalog.Order `json:"order"`
}

// Manager is an in-memory, order-preserving record list with CRUD.
type Manager[T Entity[T]] struct {
	mu     sync.RWMutex
	items  []T
	schema *catalog.Schema[T]
	prefix string
	newID  func(prefix string) string
}

type ManagerOption[T Entity[T]] func(*Manager[T])

// WithIDGenerator replaces the random id generator.
func WithIDGenerator[T Entity[T]](gen func(prefix string) string) ManagerOption[T] {
	return func(m *Manager[T]) {
		m.newID = gen
	}
}

func NewManager[T Entity[T]](schema *catalog.Schema[T], prefix string, seed []T, opts ...ManagerOption[T]) *Manager[T] {
	m := &Manager[T]{
		items:  slices.Clone(seed),
		schema: schema,
		prefix: prefix,
		newID:  RandomID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RandomID returns prefix followed by six uppercase hex characters.
func RandomID(prefix string) string {
	var b [3]byte
	_, _ = rand.Read(b[:])
	return prefix + strings.ToUpper(hex.EncodeToString(b[:]))
}

func (m *Manager[T]) All() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.items)
}

func (m *Manager[T]) Get(id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(id); i >= 0 {
		return m.items[i], nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
}

// List always queries the full current list.
func (m *Manager[T]) List(q ListQuery) (ListResult[T], error) {
	view := catalog.NewView(m.schema, m.All())
	items, err := view.Query(q.Filter, q.Order)
	if err != nil {
		return ListResult[T]{}, err
	}
	page := catalog.NormalizePage(q.Page.Page, q.Page.Limit)
	window, total := catalog.Paginate(items, page)
	return ListResult[T]{Items: window, Total: total, Page: page, Order: m.schema.Resolve(q.Order)}, nil
}

// Create assigns a fresh id, ignoring any id on item, and appends it.
func (m *Manager[T]) Create(item T) T {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.newID(m.prefix)
	for m.indexOf(id) >= 0 {
		id = m.newID(m.prefix)
	}
	created := item.WithEntityID(id)
	m.items = append(m.items, created)
	return created
}

// Update replaces the record with the same id in place.
func (m *Manager[T]) Update(item T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(item.EntityID())
	if i < 0 {
		var zero T
		return zero, fmt.Errorf("%w: %s", domain.ErrNotFound, item.EntityID())
	}
	m.items[i] = item
	return item, nil
}

// Modify applies fn to the stored record with the given id.
func (m *Manager[T]) Modify(id string, fn func(T) (T, error)) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	i := m.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	updated, err := fn(m.items[i])
	if err != nil {
		return zero, err
	}
	updated = updated.WithEntityID(id)
	m.items[i] = updated
	return updated, nil
}

// Delete removes the record once the caller has confirmed.
func (m *Manager[T]) Delete(id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	m.items = slices.Delete(m.items, i, i+1)
	return nil
}

func (m *Manager[T]) indexOf(id string) int {
	return slices.IndexFunc(m.items, func(item T) bool { return item.EntityID() == id })
}
