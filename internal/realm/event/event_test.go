package event

import (
	"context"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/louisbranch/idlerealm/internal/notify"
	"github.com/louisbranch/idlerealm/internal/realm/battle"
	"github.com/louisbranch/idlerealm/internal/realm/item"
	"github.com/louisbranch/idlerealm/internal/realm/monster"
	"github.com/louisbranch/idlerealm/internal/realm/player"
	"github.com/louisbranch/idlerealm/internal/realm/reconcile"
	"github.com/louisbranch/idlerealm/internal/realm/spell"
	"github.com/louisbranch/idlerealm/internal/realm/worldmap"
)

// scriptedSource replays a fixed sequence of small values so tests can pin
// the exact draws the dispatcher makes. Each scripted value v makes the next
// Intn(n) call return v, provided v < n.
type scriptedSource struct {
	values []int64
	idx    int
}

func (s *scriptedSource) Int63() int64 {
	v := s.values[s.idx%len(s.values)]
	s.idx++
	return v << 32
}

func (s *scriptedSource) Seed(int64) {}

func scriptedRng(values ...int64) *rand.Rand {
	return rand.New(&scriptedSource{values: values})
}

type fakeStore struct {
	sameMap    []player.Player
	sameMapErr error
	saveErr    error
	saved      []player.Player
	log        *[]string
}

func (s *fakeStore) SameMapPlayers(context.Context, string) ([]player.Player, error) {
	if s.sameMapErr != nil {
		return nil, s.sameMapErr
	}
	return s.sameMap, nil
}

func (s *fakeStore) SavePlayer(_ context.Context, p player.Player) (player.Player, error) {
	if s.saveErr != nil {
		return player.Player{}, s.saveErr
	}
	s.saved = append(s.saved, p)
	if s.log != nil {
		*s.log = append(*s.log, "save:"+p.ID)
	}
	return p, nil
}

type fakeReconciler struct {
	log *[]string
	// lastHealthCause records the cause of the most recent health check.
	lastHealthCause reconcile.Cause
	healthChecks    int
	expChecks       int
}

func (r *fakeReconciler) CheckHealth(_ context.Context, _ string, p *player.Player, cause reconcile.Cause, _ string) bool {
	r.healthChecks++
	r.lastHealthCause = cause
	if r.log != nil {
		*r.log = append(*r.log, "checkhealth:"+p.ID)
	}
	return p.Health <= 0
}

func (r *fakeReconciler) CheckExperience(_ context.Context, _ string, p *player.Player) int {
	r.expChecks++
	if r.log != nil {
		*r.log = append(*r.log, "checkexp:"+p.ID)
	}
	return 0
}

type fakeMonsterGen struct {
	mob monster.Monster
	err error
}

func (g *fakeMonsterGen) Generate(*rand.Rand, player.Player) (monster.Monster, error) {
	if g.err != nil {
		return monster.Monster{}, g.err
	}
	return g.mob, nil
}

type fakeItemGen struct {
	it  item.Item
	err error
}

func (g *fakeItemGen) Generate(*rand.Rand, int, item.Position) (item.Item, error) {
	if g.err != nil {
		return item.Item{}, g.err
	}
	return g.it, nil
}

func (g *fakeItemGen) RegenerateByName(_ *rand.Rand, existing item.Item, _ int) (item.Item, error) {
	if g.err != nil {
		return item.Item{}, g.err
	}
	regenerated := existing
	regenerated.Str++
	return regenerated, nil
}

type fakeSpellGen struct {
	sp  spell.Spell
	err error
}

func (g *fakeSpellGen) Generate(*rand.Rand, player.Player) (spell.Spell, error) {
	if g.err != nil {
		return spell.Spell{}, g.err
	}
	return g.sp, nil
}

type fakeInventory struct {
	log      *[]string
	stealErr error
}

func (i *fakeInventory) Add(p *player.Player, it item.Item) bool {
	p.Inventory = append(p.Inventory, it)
	return true
}

func (i *fakeInventory) AddLoot(p *player.Player, it item.Item, fallenOwner string) bool {
	return i.Add(p, it.RecordOwner(fallenOwner))
}

func (i *fakeInventory) Steal(_ *rand.Rand, winner, victim *player.Player) (item.Item, error) {
	if i.stealErr != nil {
		return item.Item{}, i.stealErr
	}
	if i.log != nil {
		*i.log = append(*i.log, "steal")
	}
	stolen := victim.Equipment.Weapon.RecordOwner(victim.Name)
	victim.Equipment.Weapon = item.Fist()
	winner.Inventory = append(winner.Inventory, stolen)
	return stolen, nil
}

func (i *fakeInventory) SellAll(p *player.Player) int {
	total := 0
	for _, it := range p.Inventory {
		total += it.Gold
	}
	p.Gold += total
	p.Inventory = nil
	return total
}

type recordingNotifier struct {
	messages []notify.Message
}

func (n *recordingNotifier) Send(_ context.Context, msg notify.Message) error {
	n.messages = append(n.messages, msg)
	return nil
}

// forcedOutcome returns a SimulateFunc that always resolves to the given
// result with the given remaining healths.
func forcedOutcome(result battle.Result, attackerHealth, defenderHealth int) SimulateFunc {
	return func(_ *rand.Rand, attacker, defender battle.Combatant) (battle.Outcome, error) {
		attacker.Health = attackerHealth
		defender.Health = defenderHealth
		fledBy := ""
		if result == battle.ResultFled {
			fledBy = defender.Name
		}
		return battle.Outcome{
			Result:   result,
			Attacker: attacker,
			Defender: defender,
			FledBy:   fledBy,
		}, nil
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testHero(t *testing.T, id, name string) player.Player {
	t.Helper()
	p, err := player.New(id, name, worldmap.StarterTown, func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	})
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	return p
}
