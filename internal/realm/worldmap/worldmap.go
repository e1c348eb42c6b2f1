// Package worldmap holds the realm's map table and destination picking.
package worldmap

import (
	"math/rand"

	apperrors "github.com/louisbranch/idlerealm/internal/platform/errors"
)

// Kind classifies a map for event gating.
type Kind string

const (
	// KindTown allows town events (shops, camp).
	KindTown Kind = "town"
	// KindWilds allows mob encounters.
	KindWilds Kind = "wilds"
)

// StarterTown is where new and respawned players appear.
const StarterTown = "Kindale"

// ErrNoDestination indicates no map other than the current one exists.
var ErrNoDestination = apperrors.New(apperrors.CodeMapNoDestination, "no reachable destination map")

// Map is one location in the realm.
type Map struct {
	Name string
	Kind Kind
	// XtraLucky maps grant bonus rewards for encounters fought on them.
	XtraLucky bool
}

// Atlas is the fixed set of realm maps.
type Atlas struct {
	maps []Map
}

// NewAtlas returns the canonical realm atlas.
func NewAtlas() *Atlas {
	return &Atlas{maps: []Map{
		{Name: StarterTown, Kind: KindTown},
		{Name: "Ashvale Forest", Kind: KindWilds},
		{Name: "Sunken Marsh", Kind: KindWilds},
		{Name: "Grimm Peaks", Kind: KindWilds, XtraLucky: true},
		{Name: "Howling Tundra", Kind: KindWilds, XtraLucky: true},
		{Name: "Ember Plains", Kind: KindWilds},
	}}
}

// Maps returns all maps in the atlas.
func (a *Atlas) Maps() []Map {
	out := make([]Map, len(a.maps))
	copy(out, a.maps)
	return out
}

// Lookup returns the named map.
func (a *Atlas) Lookup(name string) (Map, bool) {
	for _, m := range a.maps {
		if m.Name == name {
			return m, true
		}
	}
	return Map{}, false
}

// IsTown reports whether the named map is a town.
func (a *Atlas) IsTown(name string) bool {
	m, ok := a.Lookup(name)
	return ok && m.Kind == KindTown
}

// IsXtraLucky reports whether the named map carries a reward bonus.
func (a *Atlas) IsXtraLucky(name string) bool {
	m, ok := a.Lookup(name)
	return ok && m.XtraLucky
}

// PickNewMap chooses a uniformly random destination different from the
// current map.
func (a *Atlas) PickNewMap(rng *rand.Rand, current string) (Map, error) {
	candidates := make([]Map, 0, len(a.maps))
	for _, m := range a.maps {
		if m.Name != current {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return Map{}, ErrNoDestination
	}
	return candidates[rng.Intn(len(candidates))], nil
}
