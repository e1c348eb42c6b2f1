// Package inventory mutates a player's carried-items collection during
// loot, steal, drop, and sale operations.
package inventory

import (
	"math/rand"

	apperrors "github.com/louisbranch/idlerealm/internal/platform/errors"
	"github.com/louisbranch/idlerealm/internal/realm/item"
	"github.com/louisbranch/idlerealm/internal/realm/player"
)

// ErrNothingToSteal indicates the victim has no eligible item to take.
var ErrNothingToSteal = apperrors.New(apperrors.CodeInventoryNothingToSteal, "victim has nothing worth stealing")

const defaultCapacity = 5

// Manager applies inventory mutations to player records.
type Manager struct {
	capacity int
}

// NewManager creates an inventory manager with the default carry capacity.
func NewManager() *Manager {
	return &Manager{capacity: defaultCapacity}
}

// Add places an item into the player's inventory. It reports false when the
// player is already carrying at capacity; the item is discarded in that case.
func (m *Manager) Add(p *player.Player, it item.Item) bool {
	if len(p.Inventory) >= m.capacity {
		return false
	}
	p.Inventory = append(p.Inventory, it)
	return true
}

// AddLoot records the fallen owner on the item and places it into the
// player's inventory.
func (m *Manager) AddLoot(p *player.Player, it item.Item, fallenOwner string) bool {
	return m.Add(p, it.RecordOwner(fallenOwner))
}

// Steal moves one uniformly chosen eligible item from the victim to the
// winner. Worn equipment and carried items are both eligible; baseline
// placeholders are not. The stolen item's ownership history gains the victim.
//
// The transfer always lands in the winner's inventory, even past carry
// capacity, so a won item is never silently destroyed.
func (m *Manager) Steal(rng *rand.Rand, winner, victim *player.Player) (item.Item, error) {
	type source struct {
		it   item.Item
		take func()
	}

	candidates := []source{}
	if !victim.Equipment.Helmet.IsBare() {
		candidates = append(candidates, source{victim.Equipment.Helmet, func() {
			victim.Equipment.Helmet = item.Bare(item.PositionHelmet)
		}})
	}
	if !victim.Equipment.Armor.IsBare() {
		candidates = append(candidates, source{victim.Equipment.Armor, func() {
			victim.Equipment.Armor = item.Bare(item.PositionArmor)
		}})
	}
	if !victim.Equipment.Weapon.IsBare() {
		candidates = append(candidates, source{victim.Equipment.Weapon, func() {
			victim.Equipment.Weapon = item.Fist()
		}})
	}
	for idx := range victim.Inventory {
		i := idx
		candidates = append(candidates, source{victim.Inventory[i], func() {
			victim.Inventory = append(victim.Inventory[:i], victim.Inventory[i+1:]...)
		}})
	}

	if len(candidates) == 0 {
		return item.Item{}, ErrNothingToSteal
	}

	chosen := candidates[rng.Intn(len(candidates))]
	chosen.take()

	stolen := chosen.it.RecordOwner(victim.Name)
	winner.Inventory = append(winner.Inventory, stolen)
	return stolen, nil
}

// SellAll sells every carried item, credits the proceeds, and empties the
// inventory. It returns the gold earned.
func (m *Manager) SellAll(p *player.Player) int {
	total := 0
	for _, it := range p.Inventory {
		total += it.Gold
	}
	p.Gold += total
	p.Inventory = []item.Item{}
	return total
}
