package player

import (
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/idlerealm/internal/realm/item"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestNewBaseline(t *testing.T) {
	p, err := New("hero-1", "Aldric", "Kindale", fixedNow)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}

	if p.Health != 105 {
		t.Fatalf("expected health 105, got %d", p.Health)
	}
	if p.Level != 1 || p.Experience != 0 || p.Gold != 0 {
		t.Fatalf("progression not at baseline: %+v", p)
	}
	if p.Map != "Kindale" {
		t.Fatalf("expected starter map, got %s", p.Map)
	}
	if p.Stats != (Stats{Str: 1, Dex: 1, End: 1, Int: 1, Luck: 1}) {
		t.Fatalf("stats not at baseline: %+v", p.Stats)
	}
	if p.Equipment.Weapon.Name != item.FistName {
		t.Fatalf("expected fist weapon, got %s", p.Equipment.Weapon.Name)
	}
	if p.Equipment.Helmet.Name != item.BareName || p.Equipment.Armor.Name != item.BareName {
		t.Fatalf("expected bare helmet and armor: %+v", p.Equipment)
	}
	if len(p.Inventory) != 0 {
		t.Fatalf("expected empty inventory, got %v", p.Inventory)
	}
	if !p.Online || p.Gender != "neutral" || !p.MentionInChat {
		t.Fatalf("presence defaults wrong: %+v", p)
	}
	if p.MaxHealth() != 105 {
		t.Fatalf("baseline max health must equal 105, got %d", p.MaxHealth())
	}
	if !p.CreatedAt.Equal(fixedNow()) {
		t.Fatalf("created at not stamped: %v", p.CreatedAt)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New("", "Aldric", "Kindale", fixedNow); !errors.Is(err, ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
	if _, err := New("hero-1", "", "Kindale", fixedNow); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestResetPreservesIdentity(t *testing.T) {
	p, err := New("hero-1", "Aldric", "Kindale", fixedNow)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	p.Level = 12
	p.Gold = 4000
	p.Kills.Player = 3
	p.Map = "Grimm Peaks"

	p.ResetToBaseline("Kindale")

	if p.ID != "hero-1" || p.Name != "Aldric" {
		t.Fatalf("identity lost on reset: %+v", p)
	}
	if !p.CreatedAt.Equal(fixedNow()) {
		t.Fatalf("creation time lost on reset: %v", p.CreatedAt)
	}
	if p.Level != 1 || p.Gold != 0 || p.Kills.Player != 0 || p.Map != "Kindale" {
		t.Fatalf("reset incomplete: %+v", p)
	}
}

func TestDerivedCombatValues(t *testing.T) {
	p, err := New("hero-1", "Aldric", "Kindale", fixedNow)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	p.Stats = Stats{Str: 4, Dex: 3, End: 6, Int: 1, Luck: 2}
	p.Equipment.Weapon = item.Item{Name: "Sturdy Iron Sword", Position: item.PositionWeapon, Str: 3, Dex: 1}
	p.Equipment.Armor = item.Item{Name: "Worn Copper Mail", Position: item.PositionArmor, End: 2}

	if got := p.AttackPower(); got != 7 {
		t.Fatalf("attack power = %d, want 7", got)
	}
	if got := p.Defense(); got != 8 {
		t.Fatalf("defense = %d, want 8", got)
	}
	if got := p.Agility(); got != 4 {
		t.Fatalf("agility = %d, want 4", got)
	}
	if got := p.MaxHealth(); got != 130 {
		t.Fatalf("max health = %d, want 130", got)
	}
}

func TestExperienceToLevel(t *testing.T) {
	p := Player{Level: 3}
	if got := p.ExperienceToLevel(); got != 600 {
		t.Fatalf("experience to level = %d, want 600", got)
	}
}
