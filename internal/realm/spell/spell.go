// Package spell defines castable spells and their generator.
package spell

import (
	"fmt"
	"math/rand"

	"github.com/louisbranch/idlerealm/internal/core/dice"
	"github.com/louisbranch/idlerealm/internal/realm/player"
)

// Spell is one generated incantation.
type Spell struct {
	Name        string
	Description string
	Power       int
}

var (
	schools  = []string{"Ember", "Frost", "Gale", "Stone", "Umbral"}
	forms    = []string{"Bolt", "Ward", "Lash", "Veil", "Chorus"}
	flavours = []string{
		"It hums faintly when drawn.",
		"The air cools around the caster.",
		"Old gods are said to dislike it.",
		"It smells of rain on hot stone.",
	}
)

// Generator produces spells scaled by a caster's intellect.
type Generator struct{}

// NewGenerator creates a spell generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds a random spell for the caster. Power grows with level and
// intellect.
func (g *Generator) Generate(rng *rand.Rand, caster player.Player) (Spell, error) {
	school := schools[rng.Intn(len(schools))]
	form := forms[rng.Intn(len(forms))]
	flavour := flavours[rng.Intn(len(flavours))]

	level := caster.Level
	if level < 1 {
		level = 1
	}
	power, err := dice.Between(rng, level, level*2+caster.Stats.Int)
	if err != nil {
		return Spell{}, err
	}

	return Spell{
		Name:        fmt.Sprintf("%s %s", school, form),
		Description: flavour,
		Power:       power,
	}, nil
}
