// Package seed loads the sample catalog and back-office records.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/Domenick1991/skyjourney/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var defaultData []byte

type Data struct {
	Flights   []domain.Flight          `yaml:"flights"`
	Schedules []domain.ScheduledFlight `yaml:"schedules"`
	Bookings  []domain.Booking         `yaml:"bookings"`
}

// Load reads seed data from path, or the embedded defaults when path is empty.
func Load(path string) (*Data, error) {
	raw := defaultData
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed data: %w", err)
		}
		raw = b
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	for _, b := range d.Bookings {
		if !b.Status.Valid() {
			return nil, fmt.Errorf("seed booking %s: %w: %q", b.ID, domain.ErrInvalidStatus, b.Status)
		}
	}
	for _, f := range d.Schedules {
		if !f.Status.Valid() {
			return nil, fmt.Errorf("seed flight %s: %w: %q", f.ID, domain.ErrInvalidStatus, f.Status)
		}
	}
	return &d, nil
}
