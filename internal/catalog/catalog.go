// Package catalog provides sort and filter views over in-memory record lists.
// Every query starts from the source list, so clearing a filter is a reset.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

var (
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrInvalidDirection = errors.New("invalid sort direction")
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(s)) {
	case Asc, "":
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Order selects a sort field and direction.
type Order struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Toggle returns the order after the user picks field: the same field flips
// direction, a new field starts ascending.
func (o Order) Toggle(field string) Order {
	if o.Field == field {
		if o.Direction == Asc {
			return Order{Field: field, Direction: Desc}
		}
		return Order{Field: field, Direction: Asc}
	}
	return Order{Field: field, Direction: Asc}
}

// Filter composes its criteria with logical AND. Nil bounds are ignored.
type Filter struct {
	Query    string   `json:"query,omitempty"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	Stops    *int     `json:"stops,omitempty"`
}

// Schema describes how records of type T are searched and compared.
type Schema[T any] struct {
	fields   map[string]func(a, b T) int
	names    []string
	defaults Order

	// Text returns the fields matched by Filter.Query.
	Text func(T) []string
	// Price and Stops back the numeric filters; nil disables them.
	Price func(T) float64
	Stops func(T) int
}

func NewSchema[T any](text func(T) []string) *Schema[T] {
	return &Schema[T]{
		fields: make(map[string]func(a, b T) int),
		Text:   text,
	}
}

// SortBy registers a sortable field. compare follows cmp.Compare conventions.
func (s *Schema[T]) SortBy(name string, compare func(a, b T) int) *Schema[T] {
	if _, ok := s.fields[name]; !ok {
		s.names = append(s.names, name)
	}
	s.fields[name] = compare
	return s
}

// DefaultOrder sets the order used when a query names no sort field.
func (s *Schema[T]) DefaultOrder(o Order) *Schema[T] {
	s.defaults = o
	return s
}

// Resolve returns o, or the default order when o has no field.
func (s *Schema[T]) Resolve(o Order) Order {
	if o.Field == "" {
		return s.defaults
	}
	return o
}

func (s *Schema[T]) SortFields() []string {
	return slices.Clone(s.names)
}

func (s *Schema[T]) Match(item T, f Filter) bool {
	if f.Stops != nil && s.Stops != nil && s.Stops(item) != *f.Stops {
		return false
	}
	if s.Price != nil {
		price := s.Price(item)
		if f.MinPrice != nil && price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			return false
		}
	}
	needle := strings.ToLower(strings.TrimSpace(f.Query))
	if needle == "" || s.Text == nil {
		return true
	}
	for _, text := range s.Text(item) {
		if strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy of items. The sort is stable in both directions,
// so records with equal keys keep their input order. An empty field leaves
// the order unchanged.
func (s *Schema[T]) Sort(items []T, o Order) ([]T, error) {
	out := slices.Clone(items)
	if o.Field == "" {
		return out, nil
	}
	compare, ok := s.fields[o.Field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortField, o.Field)
	}
	switch o.Direction {
	case Asc, "":
		slices.SortStableFunc(out, compare)
	case Desc:
		slices.SortStableFunc(out, func(a, b T) int { return compare(b, a) })
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, o.Direction)
	}
	return out, nil
}

// View is an immutable source list plus the schema used to query it.
type View[T any] struct {
	schema *Schema[T]
	source []T
}

func NewView[T any](schema *Schema[T], source []T) *View[T] {
	return &View[T]{schema: schema, source: slices.Clone(source)}
}

func (v *View[T]) Source() []T {
	return slices.Clone(v.source)
}

func (v *View[T]) Len() int { return len(v.source) }

// Query filters the source list and sorts the result. An order without a
// field falls back to the schema default.
func (v *View[T]) Query(f Filter, o Order) ([]T, error) {
	matched := make([]T, 0, len(v.source))
	for _, item := range v.source {
		if v.schema.Match(item, f) {
			matched = append(matched, item)
		}
	}
	return v.schema.Sort(matched, v.schema.Resolve(o))
}
