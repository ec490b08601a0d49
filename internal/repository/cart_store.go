package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopkit/cart-service/internal/domain"
)

// ErrCartCorrupt means the persisted cart file is neither a bare list of
// items nor an object wrapping an "items" list.
var ErrCartCorrupt = errors.New("cart file malformed: expected a list or an object with an 'items' list")

// CartFileStore persists the cart as a single JSON file. Saves replace the
// whole file; there is no locking, so concurrent writers race and the last
// one wins. The service assumes a single writer.
type CartFileStore struct {
	path string
}

func NewCartFileStore(path string) *CartFileStore {
	return &CartFileStore{path: path}
}

// Load reads the cart. For backward compatibility it accepts either a bare
// list ([{"productId": ..., "quantity": ...}]) or a wrapped {"items": [...]}
// object. A missing file loads as an empty cart. Duplicate productId entries
// are preserved as stored.
func (s *CartFileStore) Load() ([]domain.CartItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.CartItem{}, nil
		}
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Items *[]domain.CartItem `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Items != nil {
		return *wrapped.Items, nil
	}

	return nil, ErrCartCorrupt
}

// Save overwrites the cart file with the given lines, stored as a bare list.
func (s *CartFileStore) Save(items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}
	return nil
}
