// Package reconcile applies the bookkeeping that follows combat and reward
// events: deaths and level-ups.
//
// The checks mutate the player in place and announce what happened; callers
// persist the result. Announcement failures are logged and swallowed so a
// broken chat surface cannot corrupt player state.
package reconcile

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/louisbranch/idlerealm/internal/notify"
	"github.com/louisbranch/idlerealm/internal/notify/render"
	"github.com/louisbranch/idlerealm/internal/realm/item"
	"github.com/louisbranch/idlerealm/internal/realm/player"
	"github.com/louisbranch/idlerealm/internal/realm/worldmap"
)

// Cause names what brought a player's health to zero.
type Cause string

const (
	// CauseMob marks a death to a wandering monster.
	CauseMob Cause = "mob"
	// CausePlayer marks a death to another player.
	CausePlayer Cause = "player"
)

// Checker reconciles player state after events resolve.
type Checker struct {
	notifier notify.Notifier
	locale   string
	log      *logrus.Logger
}

// NewChecker creates a checker that announces through the given notifier.
func NewChecker(notifier notify.Notifier, locale string, log *logrus.Logger) *Checker {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Checker{notifier: notifier, locale: locale, log: log}
}

// CheckHealth handles death. If the player's health is above zero it does
// nothing. Otherwise the death counter for the cause is bumped, the player
// respawns in the starter town at full health with bare equipment, and the
// death is announced. Returns true when the player died.
func (c *Checker) CheckHealth(ctx context.Context, channelID string, p *player.Player, cause Cause, killer string) bool {
	if p.Health > 0 {
		return false
	}

	switch cause {
	case CausePlayer:
		p.Deaths.Player++
	default:
		p.Deaths.Mob++
	}

	p.Map = worldmap.StarterTown
	p.Equipment.Helmet = item.Bare(item.PositionHelmet)
	p.Equipment.Armor = item.Bare(item.PositionArmor)
	p.Equipment.Weapon = item.Fist()
	p.Health = p.MaxHealth()

	c.announce(ctx, channelID, p.ID, render.KeyDeath, p.Name, killer, worldmap.StarterTown)
	return true
}

// CheckExperience handles level-ups. Each time accumulated experience meets
// the next level's threshold the player gains a level, one point in every
// stat, and a full heal at the new maximum. Returns the number of levels
// gained.
func (c *Checker) CheckExperience(ctx context.Context, channelID string, p *player.Player) int {
	gained := 0
	for p.Experience >= p.ExperienceToLevel() {
		p.Level++
		p.Stats.Str++
		p.Stats.Dex++
		p.Stats.End++
		p.Stats.Int++
		p.Stats.Luck++
		p.Health = p.MaxHealth()
		gained++
		c.announce(ctx, channelID, p.ID, render.KeyLevelUp, p.Name, p.Level)
	}
	return gained
}

func (c *Checker) announce(ctx context.Context, channelID, playerID, key string, args ...any) {
	text := render.NewPrinter(c.locale).Sprintf(key, args...)
	msg := notify.Message{
		ChannelID: channelID,
		Style:     notify.StyleAction,
		TargetID:  playerID,
		Mention:   true,
		Text:      text,
	}
	if err := c.notifier.Send(ctx, msg); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("announcement dropped")
	}
}
