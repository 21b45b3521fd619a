package game

import (
	"context"
	"errors"
	"testing"
)

func TestBuyStacksInventory(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	fixClock(svc, checkDay)

	svc.state.Stats.Coins = 120
	res, err := svc.Buy(ctx, "potion_stamina")
	if err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if res.Gambled {
		t.Fatal("potion purchase must not gamble")
	}
	if got := svc.Stats().Coins; got != 70 {
		t.Fatalf("coins=%d, want 70", got)
	}

	if _, err := svc.Buy(ctx, "potion_stamina"); err != nil {
		t.Fatalf("second Buy: %v", err)
	}
	inv := svc.Inventory()
	if len(inv) != 1 || inv[0].Quantity != 2 {
		t.Fatalf("inventory = %+v, want one stack of 2", inv)
	}
	if got := svc.Stats().Coins; got != 20 {
		t.Fatalf("coins=%d, want 20", got)
	}
}

func TestBuyInsufficientCoinsFailsBeforeWrite(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	fixClock(svc, checkDay)

	svc.state.Stats.Coins = 10
	_, err := svc.Buy(ctx, "weapon_kasaka")
	var insufficient InsufficientCoinsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Buy = %v, want InsufficientCoinsError", err)
	}
	if insufficient.Cost != 1500 || insufficient.Balance != 10 {
		t.Fatalf("error = %+v, want cost 1500 balance 10", insufficient)
	}
	if got := svc.Stats().Coins; got != 10 {
		t.Fatalf("failed purchase must not touch the balance, got %d", got)
	}
	if len(svc.Inventory()) != 0 {
		t.Fatalf("failed purchase must not touch the inventory: %+v", svc.Inventory())
	}
}

func TestBuyUnknownItem(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	fixClock(svc, checkDay)

	if _, err := svc.Buy(context.Background(), "no_such_item"); err == nil {
		t.Fatal("unknown item id must be rejected")
	}
}

func TestBuyCursedBoxGambles(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	fixClock(svc, checkDay)

	svc.state.Stats.Coins = 100
	res, err := svc.Buy(ctx, "box_cursed")
	if err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if !res.Gambled {
		t.Fatal("cursed box must gamble")
	}
	if res.Winning != 1 && res.Winning != 1000 {
		t.Fatalf("winning=%d, want 1 or 1000", res.Winning)
	}
	if got, want := svc.Stats().Coins, res.Winning; got != want {
		t.Fatalf("coins=%d, want %d (full cost deducted, winning added)", got, want)
	}
	if len(svc.Inventory()) != 0 {
		t.Fatal("cursed box pays coins, not items")
	}
}

func TestMysteryGiftOncePerDay(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	fixClock(svc, checkDay)

	gift, err := svc.ClaimMysteryGift(ctx)
	if err != nil {
		t.Fatalf("ClaimMysteryGift: %v", err)
	}
	if gift.Coins < 50 || gift.Coins > 249 {
		t.Fatalf("gift coins=%d, want 50-249", gift.Coins)
	}
	if gift.XP < 10 || gift.XP > 39 {
		t.Fatalf("gift xp=%d, want 10-39", gift.XP)
	}
	if got := svc.Stats().Coins; got != gift.Coins {
		t.Fatalf("coins=%d, want %d", got, gift.Coins)
	}

	if _, err := svc.ClaimMysteryGift(ctx); err != ErrGiftClaimed {
		t.Fatalf("second claim = %v, want ErrGiftClaimed", err)
	}
}
