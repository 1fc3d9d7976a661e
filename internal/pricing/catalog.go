package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"secrethouse/internal/domain"
)

// Catalog is the in-memory snapshot of the rates file. Readers always see a
// complete snapshot; Reload publishes a new one with a single pointer swap,
// so in-flight calculations keep the rates they started with.
type Catalog struct {
	snapshot atomic.Pointer[map[domain.Tariff]*domain.RentalRate]
}

type ratesFile struct {
	Rates []rateEntry `json:"rates"`
}

type rateEntry struct {
	Tariff string `json:"tariff"`
	domain.RentalRate
}

func NewCatalog() *Catalog {
	c := &Catalog{}
	empty := map[domain.Tariff]*domain.RentalRate{}
	c.snapshot.Store(&empty)
	return c
}

// LoadCatalog reads the rates file and returns a ready catalog.
func LoadCatalog(path string) (*Catalog, error) {
	c := NewCatalog()
	if err := c.Reload(path); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload parses the rates file and atomically replaces the snapshot. On any
// error the previous snapshot stays in place.
func (c *Catalog) Reload(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rates file: %w", err)
	}

	var file ratesFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse rates file: %w", err)
	}

	next := make(map[domain.Tariff]*domain.RentalRate, len(file.Rates))
	for _, entry := range file.Rates {
		tariff, err := domain.ParseTariff(entry.Tariff)
		if err != nil {
			return fmt.Errorf("rates file: %w", err)
		}
		if _, exists := next[tariff]; exists {
			return fmt.Errorf("rates file: duplicate rate for tariff %s", tariff)
		}
		rate := entry.RentalRate
		rate.Tariff = tariff
		next[tariff] = &rate
	}

	c.snapshot.Store(&next)
	return nil
}

// Lookup returns the single rate for the tariff kind.
func (c *Catalog) Lookup(tariff domain.Tariff) (*domain.RentalRate, error) {
	rates := *c.snapshot.Load()
	rate, ok := rates[tariff]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRateNotFound, tariff)
	}
	return rate, nil
}

// Tariffs lists every tariff the current snapshot has a rate for.
func (c *Catalog) Tariffs() []*domain.RentalRate {
	rates := *c.snapshot.Load()
	out := make([]*domain.RentalRate, 0, len(rates))
	for t := domain.TariffHours12; t <= domain.TariffDayForCouple; t++ {
		if rate, ok := rates[t]; ok {
			out = append(out, rate)
		}
	}
	return out
}
