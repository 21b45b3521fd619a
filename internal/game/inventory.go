package game

import (
	"context"
	"fmt"

	"github.com/Karthikeyasharma979/fitness/internal/store"
)

// AddToInventory stacks the item by id, or appends a new stack with an
// acquisition timestamp.
func (s *Service) AddToInventory(ctx context.Context, item store.Item, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addToInventoryLocked(ctx, item, quantity)
}

func (s *Service) addToInventoryLocked(ctx context.Context, item store.Item, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	found := false
	for i := range s.state.Inventory {
		if s.state.Inventory[i].ID == item.ID {
			s.state.Inventory[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		item.Quantity = quantity
		item.AcquiredAt = s.now()
		s.state.Inventory = append(s.state.Inventory, item)
	}
	if err := s.adapter.SaveInventory(ctx, s.state.Inventory); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	return nil
}
