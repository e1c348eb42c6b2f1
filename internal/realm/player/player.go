// Package player defines the persistent player record and its canonical
// baseline state.
//
// A player record is owned by the persistence layer between ticks. The
// orchestration core receives a snapshot, mutates it in memory, and hands it
// back for saving; nothing here is safe for concurrent mutation of the same
// record.
package player

import (
	"time"

	apperrors "github.com/louisbranch/idlerealm/internal/platform/errors"
	"github.com/louisbranch/idlerealm/internal/realm/item"
)

// BaselineHealth is the health a freshly created or reset player has
// (100 + 5 x baseline endurance).
const BaselineHealth = 105

// experiencePerLevel is the experience required to advance one level,
// multiplied by the current level.
const experiencePerLevel = 200

var (
	// ErrEmptyID indicates a player without an external identity.
	ErrEmptyID = apperrors.New(apperrors.CodePlayerEmptyID, "player id is required")
	// ErrEmptyName indicates a player without a display name.
	ErrEmptyName = apperrors.New(apperrors.CodePlayerEmptyName, "player name is required")
)

// Stats holds the five core combat stats.
type Stats struct {
	Str  int `json:"str"`
	Dex  int `json:"dex"`
	End  int `json:"end"`
	Int  int `json:"int"`
	Luck int `json:"luk"`
}

// Equipment holds the three worn slots.
type Equipment struct {
	Helmet item.Item `json:"helmet"`
	Armor  item.Item `json:"armor"`
	Weapon item.Item `json:"weapon"`
}

// Kills tracks victories by opponent kind.
type Kills struct {
	Mob    int `json:"mob"`
	Player int `json:"player"`
}

// Battles tracks battle outcomes.
type Battles struct {
	Won  int `json:"won"`
	Lost int `json:"lost"`
}

// Deaths tracks deaths by cause.
type Deaths struct {
	Mob    int `json:"mob"`
	Player int `json:"player"`
}

// Player is the persistent record for one hero.
type Player struct {
	ID            string
	Name          string
	Gender        string
	MentionInChat bool

	Map        string
	Health     int
	Level      int
	Experience int
	Gold       int

	Stats     Stats
	Equipment Equipment
	Inventory []item.Item

	Events     int
	Gambles    int
	Stole      int
	Stolen     int
	SpellsCast int
	Kills      Kills
	Battles    Battles
	Deaths     Deaths

	Online    bool
	CreatedAt time.Time
}

// New creates a player at the canonical baseline.
func New(id, name, startingMap string, now func() time.Time) (Player, error) {
	if id == "" {
		return Player{}, ErrEmptyID
	}
	if name == "" {
		return Player{}, ErrEmptyName
	}
	if now == nil {
		now = time.Now
	}

	p := Player{
		ID:        id,
		Name:      name,
		CreatedAt: now().UTC(),
	}
	p.ResetToBaseline(startingMap)
	return p, nil
}

// ResetToBaseline restores the canonical starting state: health 105,
// level 1, no experience or gold, all stats 1, bare equipment except the
// fist weapon, empty inventory, zeroed counters. Identity and creation time
// are preserved.
func (p *Player) ResetToBaseline(startingMap string) {
	p.Gender = "neutral"
	p.MentionInChat = true
	p.Map = startingMap
	p.Health = BaselineHealth
	p.Level = 1
	p.Experience = 0
	p.Gold = 0
	p.Stats = Stats{Str: 1, Dex: 1, End: 1, Int: 1, Luck: 1}
	p.Equipment = Equipment{
		Helmet: item.Bare(item.PositionHelmet),
		Armor:  item.Bare(item.PositionArmor),
		Weapon: item.Fist(),
	}
	p.Inventory = []item.Item{}
	p.Events = 0
	p.Gambles = 0
	p.Stole = 0
	p.Stolen = 0
	p.SpellsCast = 0
	p.Kills = Kills{}
	p.Battles = Battles{}
	p.Deaths = Deaths{}
	p.Online = true
}

// MaxHealth derives the health cap from endurance.
func (p Player) MaxHealth() int {
	return 100 + 5*p.Stats.End
}

// ExperienceToLevel returns the experience required to reach the next level.
func (p Player) ExperienceToLevel() int {
	return p.Level * experiencePerLevel
}

// AttackPower is strength plus equipment strength bonuses.
func (p Player) AttackPower() int {
	return p.Stats.Str + p.Equipment.Weapon.Str + p.Equipment.Armor.Str + p.Equipment.Helmet.Str
}

// Defense is endurance plus equipment endurance bonuses.
func (p Player) Defense() int {
	return p.Stats.End + p.Equipment.Weapon.End + p.Equipment.Armor.End + p.Equipment.Helmet.End
}

// Agility is dexterity plus equipment dexterity bonuses; it feeds flee checks.
func (p Player) Agility() int {
	return p.Stats.Dex + p.Equipment.Weapon.Dex + p.Equipment.Armor.Dex + p.Equipment.Helmet.Dex
}
