// Package item defines equipment and loot records plus their generator.
package item

import apperrors "github.com/louisbranch/idlerealm/internal/platform/errors"

// Position identifies the equipment slot an item occupies.
type Position string

const (
	// PositionHelmet is the head slot.
	PositionHelmet Position = "helmet"
	// PositionArmor is the body slot.
	PositionArmor Position = "armor"
	// PositionWeapon is the weapon slot.
	PositionWeapon Position = "weapon"
)

// ErrEmptyPosition indicates a generation request without a valid slot.
var ErrEmptyPosition = apperrors.New(apperrors.CodeItemEmptyPosition, "item position is required")

// Item is one piece of equipment or loot.
//
// PreviousOwners is append-only provenance: a holder is recorded when the
// item changes hands and is never erased afterwards.
type Item struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Str      int      `json:"str"`
	Dex      int      `json:"dex"`
	End      int      `json:"end"`
	Int      int      `json:"int"`
	Gold     int      `json:"gold"`
	// PreviousOwners lists prior holders, oldest first.
	PreviousOwners []string `json:"previous_owners"`
}

// Rating is the combined stat weight used when comparing candidate loot.
func (i Item) Rating() int {
	return i.Str + i.Dex + i.End + i.Int
}

// IsBare reports whether the item is one of the baseline placeholders a
// freshly reset player carries.
func (i Item) IsBare() bool {
	return i.Name == BareName || i.Name == FistName
}

// RecordOwner appends a holder to the item's provenance and returns the
// updated item. The history is never truncated.
func (i Item) RecordOwner(name string) Item {
	owners := make([]string, 0, len(i.PreviousOwners)+1)
	owners = append(owners, i.PreviousOwners...)
	owners = append(owners, name)
	i.PreviousOwners = owners
	return i
}

const (
	// BareName is the placeholder for an empty helmet or armor slot.
	BareName = "Nothing"
	// FistName is the baseline weapon every player starts with.
	FistName = "Fist"
)

// Bare returns the empty placeholder for a helmet or armor slot.
func Bare(position Position) Item {
	return Item{Name: BareName, Position: position, PreviousOwners: []string{}}
}

// Fist returns the baseline starter weapon.
func Fist() Item {
	return Item{
		Name:           FistName,
		Position:       PositionWeapon,
		Str:            1,
		Dex:            1,
		End:            1,
		PreviousOwners: []string{},
	}
}
