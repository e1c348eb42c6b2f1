// Package event is the orchestration core: it translates one externally
// triggered player tick into game-state mutations, fully sequenced so that
// persistence happens only after all in-memory effects for that tick are
// resolved.
//
// Operations are sequential pipelines. Within one tick the side-effect order
// is fixed (steal, then health reconciliation, then persistence, then
// experience reconciliation); there is no ordering guarantee across ticks
// for different players, and the caller is expected to schedule at most one
// in-flight tick per player.
package event

import (
	"context"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/louisbranch/idlerealm/internal/notify"
	"github.com/louisbranch/idlerealm/internal/notify/render"
	"github.com/louisbranch/idlerealm/internal/realm/battle"
	"github.com/louisbranch/idlerealm/internal/realm/inventory"
	"github.com/louisbranch/idlerealm/internal/realm/item"
	"github.com/louisbranch/idlerealm/internal/realm/monster"
	"github.com/louisbranch/idlerealm/internal/realm/player"
	"github.com/louisbranch/idlerealm/internal/realm/reconcile"
	"github.com/louisbranch/idlerealm/internal/realm/spell"
	"github.com/louisbranch/idlerealm/internal/realm/worldmap"
	"github.com/louisbranch/idlerealm/internal/telemetry"
)

// Store is the persistence surface the dispatcher depends on. The store must
// fail with a distinguishable error when unreachable; the dispatcher does not
// retry, it surfaces the failure.
type Store interface {
	SameMapPlayers(ctx context.Context, mapName string) ([]player.Player, error)
	SavePlayer(ctx context.Context, p player.Player) (player.Player, error)
}

// MonsterGenerator produces an encounter opponent sized to a player.
type MonsterGenerator interface {
	Generate(rng *rand.Rand, opponent player.Player) (monster.Monster, error)
}

// ItemGenerator produces and rebuilds equipment sized to a player's level.
type ItemGenerator interface {
	Generate(rng *rand.Rand, level int, position item.Position) (item.Item, error)
	RegenerateByName(rng *rand.Rand, existing item.Item, level int) (item.Item, error)
}

// SpellGenerator produces a spell scaled by a caster's intellect.
type SpellGenerator interface {
	Generate(rng *rand.Rand, caster player.Player) (spell.Spell, error)
}

// Inventory mutates a player's carried-items collection.
type Inventory interface {
	Add(p *player.Player, it item.Item) bool
	AddLoot(p *player.Player, it item.Item, fallenOwner string) bool
	Steal(rng *rand.Rand, winner, victim *player.Player) (item.Item, error)
	SellAll(p *player.Player) int
}

// Reconciler applies post-outcome health and experience checks. Both methods
// mutate the player in place; the mutated record is the canonical state used
// for subsequent persistence.
type Reconciler interface {
	CheckHealth(ctx context.Context, channelID string, p *player.Player, cause reconcile.Cause, killer string) bool
	CheckExperience(ctx context.Context, channelID string, p *player.Player) int
}

// SimulateFunc resolves one battle. It exists so tests can force outcomes;
// production wiring uses battle.Simulate.
type SimulateFunc func(rng *rand.Rand, attacker, defender battle.Combatant) (battle.Outcome, error)

// Deps carries the dispatcher's collaborators. Nil optional fields fall back
// to working defaults.
type Deps struct {
	Store     Store
	Notifier  notify.Notifier
	Atlas     *worldmap.Atlas
	Monsters  MonsterGenerator
	Items     ItemGenerator
	Spells    SpellGenerator
	Inventory Inventory
	Reconcile Reconciler
	Telemetry *telemetry.Emitter
	Simulate  SimulateFunc
	Rng       *rand.Rand
	Locale    string
	Log       *logrus.Logger
}

// Dispatcher decides what happens to a player on each tick and sequences the
// resulting side effects.
type Dispatcher struct {
	store     Store
	notifier  notify.Notifier
	atlas     *worldmap.Atlas
	monsters  MonsterGenerator
	items     ItemGenerator
	spells    SpellGenerator
	inventory Inventory
	reconcile Reconciler
	telemetry *telemetry.Emitter
	simulate  SimulateFunc
	rng       *rand.Rand
	locale    string
	log       *logrus.Logger

	// blizzard is the one piece of process state shared across ticks. It is
	// read-then-write without a lock: both values are idempotent and
	// commutative under reordering, so a racing double "on" has no
	// observable effect.
	blizzard bool
}

// NewDispatcher wires a dispatcher from its collaborators.
func NewDispatcher(deps Deps) *Dispatcher {
	d := &Dispatcher{
		store:     deps.Store,
		notifier:  deps.Notifier,
		atlas:     deps.Atlas,
		monsters:  deps.Monsters,
		items:     deps.Items,
		spells:    deps.Spells,
		inventory: deps.Inventory,
		reconcile: deps.Reconcile,
		telemetry: deps.Telemetry,
		simulate:  deps.Simulate,
		rng:       deps.Rng,
		locale:    deps.Locale,
		log:       deps.Log,
	}
	if d.notifier == nil {
		d.notifier = notify.Discard{}
	}
	if d.atlas == nil {
		d.atlas = worldmap.NewAtlas()
	}
	if d.inventory == nil {
		d.inventory = inventory.NewManager()
	}
	if d.simulate == nil {
		d.simulate = battle.Simulate
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(1))
	}
	if d.log == nil {
		d.log = logrus.StandardLogger()
	}
	return d
}

// announce delivers one message to the player's channel. Messaging is
// fire-and-forget: delivery failures are logged and never fail the tick.
func (d *Dispatcher) announce(ctx context.Context, channelID, targetID string, style notify.Style, mention bool, key string, args ...any) {
	text := render.NewPrinter(d.locale).Sprintf(key, args...)
	msg := notify.Message{
		ChannelID: channelID,
		Style:     style,
		TargetID:  targetID,
		Mention:   mention,
		Text:      text,
	}
	if err := d.notifier.Send(ctx, msg); err != nil {
		d.log.WithError(err).WithField("key", key).Warn("announcement dropped")
	}
}

func (d *Dispatcher) emit(ctx context.Context, name, playerID, detail string) {
	d.telemetry.Info(ctx, name, playerID, detail)
}

// playerCombatant projects a player record into its combat-relevant view.
func playerCombatant(p player.Player) battle.Combatant {
	return battle.Combatant{
		Name:      p.Name,
		Health:    p.Health,
		MaxHealth: p.MaxHealth(),
		Attack:    p.AttackPower(),
		Defense:   p.Defense(),
		Agility:   p.Agility(),
		Luck:      p.Stats.Luck,
	}
}

func mobCombatant(m monster.Monster) battle.Combatant {
	return battle.Combatant{
		Name:      m.Name,
		Health:    m.Health,
		MaxHealth: m.MaxHealth,
		Attack:    m.Stats.Str,
		Defense:   m.Stats.End,
		Agility:   m.Stats.Dex,
		Luck:      m.Stats.Luck,
	}
}

func normalizeMultiplier(multiplier int) int {
	if multiplier < 1 {
		return 1
	}
	return multiplier
}
