package game

import (
	"context"
	"fmt"

	"github.com/Karthikeyasharma979/fitness/internal/store"
)

// ShopItem is one entry of the fixed shop catalog.
type ShopItem struct {
	ID   string
	Name string
	Desc string
	Cost int
	Type string
	Rank string
}

// ShopCatalog is the fixed item catalog.
var ShopCatalog = []ShopItem{
	{ID: "box_cursed", Name: "Random Box (Cursed)", Desc: "Open for a chance at greatness or despair.", Cost: 100, Type: "Rare", Rank: "?"},
	{ID: "potion_stamina", Name: "Stamina Potion", Desc: "Restore 50% Energy instantly.", Cost: 50, Type: "Consumable", Rank: "E"},
	{ID: "potion_xp", Name: "XP Booster", Desc: "Double XP for next workout.", Cost: 100, Type: "Consumable", Rank: "D"},
	{ID: "item_freeze", Name: "Streak Freeze", Desc: "Prevent streak reset for 1 day.", Cost: 150, Type: "Rare", Rank: "A"},
	{ID: "upgrade_sprint", Name: "Sprint Mastery", Desc: "Increase Sprint Efficiency (LVL 2).", Cost: 200, Type: "Upgrade", Rank: "C"},
	{ID: "consumable_rasaka", Name: "Rasaka's Venom", Desc: "High Risk: +5 STR, -10% HP for workout.", Cost: 300, Type: "Consumable", Rank: "C"},
	{ID: "bundle_starter", Name: "Starter Hunter Pack", Desc: "Bundle: 2x Stamina Potion, 1x XP Boost.", Cost: 500, Type: "Bundle", Rank: "E"},
	{ID: "gear_wrist_weights", Name: "Gravity Wrist Weights", Desc: "+5% Strength Gain per workout.", Cost: 500, Type: "Equipment", Rank: "B"},
	{ID: "key_dungeon", Name: "Dungeon Key (Red)", Desc: "Unlock S-Rank Instant Dungeon.", Cost: 1000, Type: "Rare", Rank: "S"},
	{ID: "weapon_kasaka", Name: "Kasaka's Venom Fang", Desc: "C-Rank Dagger. Effect: Paralyze + Bleed.", Cost: 1500, Type: "Weapon", Rank: "C"},
	{ID: "weapon_knight_killer", Name: "Knight Killer", Desc: "B-Rank Dagger. Effect: Armor Pierce.", Cost: 2500, Type: "Weapon", Rank: "B"},
	{ID: "consumable_elixir", Name: "Elixir of Life", Desc: "Cure all status effects & reset daily limits.", Cost: 5000, Type: "Consumable", Rank: "S"},
}

// ShopItemByID returns nil when the id is not in the catalog.
func ShopItemByID(id string) *ShopItem {
	for i := range ShopCatalog {
		if ShopCatalog[i].ID == id {
			return &ShopCatalog[i]
		}
	}
	return nil
}

// BuyResult reports the outcome of a purchase. The cursed box gambles
// coins instead of producing an item.
type BuyResult struct {
	Item    *ShopItem
	Gambled bool
	Winning int
}

// Buy deducts the item's cost and adds it to the inventory. Purchases the
// balance cannot cover fail before any write.
func (s *Service) Buy(ctx context.Context, itemID string) (*BuyResult, error) {
	item := ShopItemByID(itemID)
	if item == nil {
		return nil, fmt.Errorf("item %q not in catalog", itemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Stats.Coins < item.Cost {
		return nil, InsufficientCoinsError{Cost: item.Cost, Balance: s.state.Stats.Coins}
	}
	if err := s.addCoinsLocked(ctx, -item.Cost); err != nil {
		return nil, err
	}

	if item.ID == "box_cursed" {
		winning := 1
		if s.rng.Float64() > 0.9 {
			winning = 1000
		}
		if err := s.addCoinsLocked(ctx, winning); err != nil {
			return nil, err
		}
		if winning > 1 {
			s.log.Add(fmt.Sprintf("JACKPOT! FOUND %d COINS!", winning))
		} else {
			s.log.Add("CURSED! Found 1 Coin...")
		}
		return &BuyResult{Item: item, Gambled: true, Winning: winning}, nil
	}

	err := s.addToInventoryLocked(ctx, store.Item{
		ID:   item.ID,
		Name: item.Name,
		Desc: item.Desc,
		Type: item.Type,
		Rank: item.Rank,
	}, 1)
	if err != nil {
		return nil, err
	}
	s.log.Add("PURCHASE SUCCESSFUL")
	return &BuyResult{Item: item}, nil
}

// GiftResult is the payout of the daily mystery gift.
type GiftResult struct {
	Coins int
	XP    int
}

// ClaimMysteryGift opens the daily supply chest: once per calendar day,
// a random coin and XP payout.
func (s *Service) ClaimMysteryGift(ctx context.Context) (*GiftResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	last, err := s.adapter.Marker(ctx, store.KeyLastGift)
	if err != nil {
		return nil, err
	}
	if last == today {
		return nil, ErrGiftClaimed
	}

	coins := s.rng.Intn(200) + 50
	xp := s.rng.Intn(30) + 10
	if err := s.addCoinsLocked(ctx, coins); err != nil {
		return nil, err
	}
	if err := s.addXPLocked(ctx, xp); err != nil {
		return nil, err
	}
	if err := s.adapter.SetMarker(ctx, store.KeyLastGift, today); err != nil {
		return nil, fmt.Errorf("save last gift: %w", err)
	}
	s.log.Add(fmt.Sprintf("SUPPLY CHEST OPENED: +%d COINS, +%d XP", coins, xp))
	return &GiftResult{Coins: coins, XP: xp}, nil
}
