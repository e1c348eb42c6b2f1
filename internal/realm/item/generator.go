package item

import (
	"fmt"
	"math/rand"

	"github.com/louisbranch/idlerealm/internal/core/dice"
)

// materials and qualities are combined with a slot base name to produce
// generated item names. Stat budgets scale with the holder's level.
var (
	materials = []string{"Copper", "Iron", "Steel", "Silver", "Obsidian", "Mithril"}
	qualities = []string{"Cracked", "Worn", "Sturdy", "Fine", "Ornate", "Runed"}

	baseNames = map[Position][]string{
		PositionHelmet: {"Cap", "Helm", "Visor", "Crown"},
		PositionArmor:  {"Tunic", "Mail", "Cuirass", "Plate"},
		PositionWeapon: {"Dagger", "Sword", "Axe", "Maul", "Spear"},
	}
)

// Generator produces equipment sized to a holder's level.
type Generator struct{}

// NewGenerator creates an item generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces a random item for the given holder level. The slot is
// chosen uniformly when position is empty.
func (g *Generator) Generate(rng *rand.Rand, level int, position Position) (Item, error) {
	if position == "" {
		slots := []Position{PositionHelmet, PositionArmor, PositionWeapon}
		position = slots[rng.Intn(len(slots))]
	}
	bases, ok := baseNames[position]
	if !ok {
		return Item{}, ErrEmptyPosition
	}
	if level < 1 {
		level = 1
	}

	quality := qualities[rng.Intn(len(qualities))]
	material := materials[rng.Intn(len(materials))]
	base := bases[rng.Intn(len(bases))]
	name := fmt.Sprintf("%s %s %s", quality, material, base)

	generated := Item{Name: name, Position: position, PreviousOwners: []string{}}
	return g.rollStats(rng, generated, level)
}

// RegenerateByName rebuilds a named item's stats for the given holder level,
// keeping its name and provenance intact. Baseline placeholders are returned
// unchanged.
func (g *Generator) RegenerateByName(rng *rand.Rand, existing Item, level int) (Item, error) {
	if existing.Position == "" {
		return Item{}, ErrEmptyPosition
	}
	if existing.IsBare() {
		return existing, nil
	}
	return g.rollStats(rng, existing, level)
}

func (g *Generator) rollStats(rng *rand.Rand, it Item, level int) (Item, error) {
	budget := 2 + level
	var err error
	if it.Str, err = dice.Between(rng, 0, budget); err != nil {
		return Item{}, err
	}
	if it.Dex, err = dice.Between(rng, 0, budget); err != nil {
		return Item{}, err
	}
	if it.End, err = dice.Between(rng, 0, budget); err != nil {
		return Item{}, err
	}
	if it.Int, err = dice.Between(rng, 0, budget); err != nil {
		return Item{}, err
	}
	if it.Gold, err = dice.Between(rng, level, level*15); err != nil {
		return Item{}, err
	}
	return it, nil
}
