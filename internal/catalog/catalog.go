// Package catalog holds the static service registry the scheduling core
// resolves requests against.
package catalog

import (
	"fmt"
	"strconv"

	"randevu/internal/models"
)

// Catalog maps service keys to their definitions. Built once at startup
// from config; read-only afterwards, safe for concurrent use.
type Catalog struct {
	byKey map[string]models.Service
	order []string
}

func New(services []models.Service) (*Catalog, error) {
	if len(services) == 0 {
		return nil, fmt.Errorf("catalog requires at least one service")
	}
	c := &Catalog{byKey: make(map[string]models.Service, len(services))}
	for _, s := range services {
		if s.Key == "" {
			return nil, fmt.Errorf("service %q has empty key", s.Title)
		}
		if s.DurationMin < 1 {
			return nil, fmt.Errorf("service %q has invalid duration %d", s.Key, s.DurationMin)
		}
		if _, dup := c.byKey[s.Key]; dup {
			return nil, fmt.Errorf("duplicate service key %q", s.Key)
		}
		c.byKey[s.Key] = s
		c.order = append(c.order, s.Key)
	}
	return c, nil
}

// Get looks up a single service. A missing key is a normal outcome, the
// caller sent an unknown identifier.
func (c *Catalog) Get(key string) (models.Service, bool) {
	s, ok := c.byKey[key]
	return s, ok
}

// Resolve maps the requested keys to services. Any unknown key invalidates
// the whole batch. Duplicate keys are resolved independently and therefore
// count their duration twice.
func (c *Catalog) Resolve(keys []string) ([]models.Service, error) {
	if len(keys) == 0 {
		return nil, models.ErrServiceRequired
	}
	out := make([]models.Service, 0, len(keys))
	for _, k := range keys {
		s, ok := c.byKey[k]
		if !ok {
			return nil, models.ErrUnknownService
		}
		out = append(out, s)
	}
	return out, nil
}

// TotalDuration sums the durations of all requested services.
func (c *Catalog) TotalDuration(keys []string) (int, error) {
	services, err := c.Resolve(keys)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, s := range services {
		total += s.DurationMin
	}
	if total < 1 {
		return 0, models.ErrInvalidDuration
	}
	return total, nil
}

// List returns all services in config order.
func (c *Catalog) List() []models.Service {
	out := make([]models.Service, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.byKey[k])
	}
	return out
}

// FormatPrice renders a service price in Turkish lira, as a single value
// or a range when the service quotes one.
func FormatPrice(s models.Service) string {
	if s.PriceToTRY > 0 {
		return fmtTRY(s.PriceFromTRY) + " – " + fmtTRY(s.PriceToTRY)
	}
	return fmtTRY(s.PriceFromTRY)
}

// fmtTRY formats with tr-TR thousands grouping: 3500 -> "₺3.500".
func fmtTRY(amount int) string {
	raw := strconv.Itoa(amount)
	var grouped []byte
	for i, d := range []byte(raw) {
		if i > 0 && (len(raw)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}
	return "₺" + string(grouped)
}
