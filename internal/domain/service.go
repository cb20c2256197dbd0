package domain

import "fmt"

// Service is an entry of the provider's service catalogue.
type Service struct {
	ID      string
	Name    string
	Minutes int
	Price   int64
}

// Catalogue maps service id to service.
type Catalogue map[string]Service

// NewCatalogue indexes services by id.
func NewCatalogue(services []Service) Catalogue {
	c := make(Catalogue, len(services))
	for _, s := range services {
		c[s.ID] = s
	}
	return c
}

// Resolve looks up every id, failing on the first unknown one.
// Repeated ids are collapsed, keeping first-seen order.
func (c Catalogue) Resolve(ids []string) ([]Service, error) {
	out := make([]Service, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		s, ok := c[id]
		if !ok {
			return nil, fmt.Errorf("unknown service %q", id)
		}
		seen[id] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

// TotalMinutes sums service durations.
func TotalMinutes(services []Service) int {
	total := 0
	for _, s := range services {
		total += s.Minutes
	}
	return total
}

// TotalPrice sums service prices.
func TotalPrice(services []Service) int64 {
	var total int64
	for _, s := range services {
		total += s.Price
	}
	return total
}

// DurationSlots converts minutes to whole slots, rounding up, minimum one.
func DurationSlots(minutes int) int {
	n := (minutes + SlotMinutes - 1) / SlotMinutes
	if n < 1 {
		return 1
	}
	return n
}
