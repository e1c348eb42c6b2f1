// Package monster defines ephemeral encounter opponents and their generator.
//
// Monsters are sized against the opposing player and live only for the
// duration of one battle; they are never persisted.
package monster

import (
	"math/rand"

	"github.com/louisbranch/idlerealm/internal/core/dice"
	"github.com/louisbranch/idlerealm/internal/realm/player"
	"github.com/louisbranch/idlerealm/internal/realm/worldmap"
)

// Monster is one generated encounter opponent.
type Monster struct {
	Name       string
	Health     int
	MaxHealth  int
	Stats      player.Stats
	Gold       int
	Experience int
	// XtraLucky marks spawns from maps with a reward bonus.
	XtraLucky bool
}

type template struct {
	name string
	// statSpread scales the per-stat roll ceiling relative to player level.
	statSpread int
	goldSpread int
	expSpread  int
}

var templates = []template{
	{name: "Ravenous Wolf", statSpread: 1, goldSpread: 8, expSpread: 12},
	{name: "Marsh Bandit", statSpread: 2, goldSpread: 14, expSpread: 14},
	{name: "Cave Scorpion", statSpread: 2, goldSpread: 10, expSpread: 16},
	{name: "Gravebound Wight", statSpread: 3, goldSpread: 16, expSpread: 20},
	{name: "Stormcall Wizard", statSpread: 3, goldSpread: 20, expSpread: 22},
	{name: "Mountain Yeti", statSpread: 4, goldSpread: 24, expSpread: 28},
}

// Generator produces monsters sized to a player's level and map.
type Generator struct {
	atlas *worldmap.Atlas
}

// NewGenerator creates a monster generator over the given atlas.
func NewGenerator(atlas *worldmap.Atlas) *Generator {
	return &Generator{atlas: atlas}
}

// Generate builds a monster scaled against the opposing player. Spawns on
// bonus maps carry extra gold and experience and are flagged XtraLucky.
func (g *Generator) Generate(rng *rand.Rand, opponent player.Player) (Monster, error) {
	tpl := templates[rng.Intn(len(templates))]
	level := opponent.Level
	if level < 1 {
		level = 1
	}

	rollStat := func(spread int) (int, error) {
		return dice.Between(rng, level, level+spread*level)
	}

	var m Monster
	var err error
	m.Name = tpl.name
	if m.Stats.Str, err = rollStat(tpl.statSpread); err != nil {
		return Monster{}, err
	}
	if m.Stats.Dex, err = rollStat(tpl.statSpread); err != nil {
		return Monster{}, err
	}
	if m.Stats.End, err = rollStat(tpl.statSpread); err != nil {
		return Monster{}, err
	}
	m.Stats.Int = level
	m.Stats.Luck = level

	m.MaxHealth = 50 + 10*m.Stats.End
	m.Health = m.MaxHealth

	if m.Gold, err = dice.Between(rng, level, level*tpl.goldSpread); err != nil {
		return Monster{}, err
	}
	if m.Experience, err = dice.Between(rng, level*2, level*tpl.expSpread); err != nil {
		return Monster{}, err
	}

	if g.atlas != nil && g.atlas.IsXtraLucky(opponent.Map) {
		m.XtraLucky = true
		m.Gold *= 2
		m.Experience = m.Experience * 3 / 2
	}
	return m, nil
}
