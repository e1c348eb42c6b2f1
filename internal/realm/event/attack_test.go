package event

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/idlerealm/internal/realm/battle"
	"github.com/louisbranch/idlerealm/internal/realm/inventory"
	"github.com/louisbranch/idlerealm/internal/realm/item"
	"github.com/louisbranch/idlerealm/internal/realm/monster"
	"github.com/louisbranch/idlerealm/internal/realm/player"
)

func TestPvpWinSequence(t *testing.T) {
	callLog := []string{}
	attacker := testHero(t, "a-1", "Aldric")
	defender := testHero(t, "d-1", "Bryn")

	store := &fakeStore{sameMap: []player.Player{attacker, defender}, log: &callLog}
	rec := &fakeReconciler{log: &callLog}
	d := NewDispatcher(Deps{
		Store:     store,
		Inventory: &fakeInventory{log: &callLog},
		Reconcile: rec,
		Simulate:  forcedOutcome(battle.ResultWin, 80, 0),
		Rng:       scriptedRng(0),
		Locale:    "en",
		Log:       quietLogger(),
	})

	got, err := d.AttackPlayerVsPlayer(context.Background(), "chan-1", attacker, []string{"a-1", "d-1"}, 2)
	if err != nil {
		t.Fatalf("pvp attack: %v", err)
	}

	want := []string{"steal", "checkhealth:d-1", "save:d-1", "checkexp:a-1", "save:a-1"}
	if !reflect.DeepEqual(callLog, want) {
		t.Fatalf("wrong side effect order:\n got %v\nwant %v", callLog, want)
	}

	if got.Health != 80 {
		t.Fatalf("expected updated health 80, got %d", got.Health)
	}
	if got.Kills.Player != 1 || got.Battles.Won != 1 || got.Stole != 1 {
		t.Fatalf("winner counters wrong: %+v", got)
	}
	if got.Experience != defender.Level*pvpExperiencePerLevel*2 {
		t.Fatalf("expected experience reward %d, got %d", defender.Level*pvpExperiencePerLevel*2, got.Experience)
	}
	if len(got.Inventory) != 1 {
		t.Fatalf("expected stolen item in winner inventory, got %v", got.Inventory)
	}
}

func TestPvpLostSwapsRoles(t *testing.T) {
	callLog := []string{}
	attacker := testHero(t, "a-1", "Aldric")
	defender := testHero(t, "d-1", "Bryn")

	store := &fakeStore{sameMap: []player.Player{attacker, defender}, log: &callLog}
	d := NewDispatcher(Deps{
		Store:     store,
		Inventory: &fakeInventory{log: &callLog},
		Reconcile: &fakeReconciler{log: &callLog},
		Simulate:  forcedOutcome(battle.ResultLost, 0, 70),
		Rng:       scriptedRng(0),
		Locale:    "en",
		Log:       quietLogger(),
	})

	got, err := d.AttackPlayerVsPlayer(context.Background(), "chan-1", attacker, []string{"a-1", "d-1"}, 1)
	if err != nil {
		t.Fatalf("pvp attack: %v", err)
	}

	want := []string{"steal", "checkhealth:a-1", "save:a-1", "checkexp:d-1", "save:d-1"}
	if !reflect.DeepEqual(callLog, want) {
		t.Fatalf("wrong side effect order:\n got %v\nwant %v", callLog, want)
	}

	if got.Battles.Lost != 1 || got.Stolen != 1 {
		t.Fatalf("loser counters wrong: %+v", got)
	}
	if got.Equipment.Weapon.Name != item.FistName {
		t.Fatalf("expected weapon stolen down to fist, got %s", got.Equipment.Weapon.Name)
	}
	if got.Kills.Player != 0 {
		t.Fatalf("loser must not gain kills: %+v", got)
	}
}

func TestPvpFledChecksDefenderFirst(t *testing.T) {
	callLog := []string{}
	attacker := testHero(t, "a-1", "Aldric")
	defender := testHero(t, "d-1", "Bryn")

	store := &fakeStore{sameMap: []player.Player{attacker, defender}, log: &callLog}
	d := NewDispatcher(Deps{
		Store:     store,
		Inventory: &fakeInventory{log: &callLog},
		Reconcile: &fakeReconciler{log: &callLog},
		Simulate:  forcedOutcome(battle.ResultFled, 60, 20),
		Rng:       scriptedRng(0),
		Locale:    "en",
		Log:       quietLogger(),
	})

	got, err := d.AttackPlayerVsPlayer(context.Background(), "chan-1", attacker, []string{"a-1", "d-1"}, 1)
	if err != nil {
		t.Fatalf("pvp attack: %v", err)
	}

	want := []string{"checkexp:d-1", "save:d-1", "checkexp:a-1", "save:a-1"}
	if !reflect.DeepEqual(callLog, want) {
		t.Fatalf("wrong side effect order:\n got %v\nwant %v", callLog, want)
	}
	if got.Health != 60 {
		t.Fatalf("expected updated health 60, got %d", got.Health)
	}
}

func TestPvpNoneResultPassesThrough(t *testing.T) {
	attacker := testHero(t, "a-1", "Aldric")
	defender := testHero(t, "d-1", "Bryn")

	store := &fakeStore{sameMap: []player.Player{attacker, defender}}
	d := NewDispatcher(Deps{
		Store:     store,
		Inventory: &fakeInventory{},
		Reconcile: &fakeReconciler{},
		Simulate:  forcedOutcome(battle.ResultNone, 1, 1),
		Rng:       scriptedRng(0),
		Locale:    "en",
		Log:       quietLogger(),
	})

	got, err := d.AttackPlayerVsPlayer(context.Background(), "chan-1", attacker, []string{"a-1", "d-1"}, 1)
	if err != nil {
		t.Fatalf("pvp attack: %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("pass-through must not persist, saved %d", len(store.saved))
	}
	if !reflect.DeepEqual(got, attacker) {
		t.Fatalf("pass-through mutated the player:\n got %+v\nwant %+v", got, attacker)
	}
}

func TestMobNoneResultPassesThrough(t *testing.T) {
	hero := testHero(t, "a-1", "Aldric")

	store := &fakeStore{}
	d := NewDispatcher(Deps{
		Store:     store,
		Monsters:  &fakeMonsterGen{},
		Items:     &fakeItemGen{},
		Inventory: &fakeInventory{},
		Reconcile: &fakeReconciler{},
		Simulate:  forcedOutcome(battle.ResultNone, 1, 1),
		Rng:       scriptedRng(0),
		Locale:    "en",
		Log:       quietLogger(),
	})

	got, err := d.AttackMob(context.Background(), "chan-1", hero, 1)
	if err != nil {
		t.Fatalf("mob attack: %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("pass-through must not persist, saved %d", len(store.saved))
	}
	if !reflect.DeepEqual(got, hero) {
		t.Fatalf("pass-through mutated the player:\n got %+v\nwant %+v", got, hero)
	}
}

func TestPvpFallsBackToMobWithoutOpponents(t *testing.T) {
	attacker := testHero(t, "a-1", "Aldric")
	offline := testHero(t, "d-1", "Bryn")
	dead := testHero(t, "d-2", "Cale")
	dead.Health = 0

	store := &fakeStore{sameMap: []player.Player{attacker, offline, dead}}
	rec := &fakeReconciler{}
	d := NewDispatcher(Deps{
		Store:     store,
		Monsters:  &fakeMonsterGen{mob: monster.Monster{Name: "Ravenous Wolf", Health: 40, MaxHealth: 40, Gold: 10, Experience: 20}},
		Items:     &fakeItemGen{it: item.Item{Name: "Bent Copper Dagger", Position: item.PositionWeapon}},
		Inventory: inventory.NewManager(),
		Reconcile: rec,
		Simulate:  forcedOutcome(battle.ResultWin, 90, 0),
		Rng:       scriptedRng(0),
		Locale:    "en",
		Log:       quietLogger(),
	})

	// Only the attacker is online; the other live player is filtered out.
	got, err := d.AttackPlayerVsPlayer(context.Background(), "chan-1", attacker, []string{"a-1", "d-2"}, 1)
	if err != nil {
		t.Fatalf("pvp attack: %v", err)
	}
	if got.Kills.Player != 0 {
		t.Fatalf("fallback must not produce a pvp outcome: %+v", got)
	}
	if got.Kills.Mob != 1 || got.Battles.Won != 1 {
		t.Fatalf("expected a mob win, got %+v", got)
	}
}

func TestPvpMobFallbackFailureIsSuppressed(t *testing.T) {
	attacker := testHero(t, "a-1", "Aldric")
	store := &fakeStore{}
	d := NewDispatcher(Deps{
		Store:     store,
		Monsters:  &fakeMonsterGen{err: errors.New("no spawn table")},
		Inventory: &fakeInventory{},
		Reconcile: &fakeReconciler{},
		Rng:       scriptedRng(0),
		Locale:    "en",
		Log:       quietLogger(),
	})

	got, err := d.AttackPlayerVsPlayer(context.Background(), "chan-1", attacker, nil, 1)
	if err != nil {
		t.Fatalf("fallback failure must be suppressed, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("nothing should persist after a suppressed fallback, saved %d", len(store.saved))
	}
	if got.ID != attacker.ID || got.Kills.Mob != 0 {
		t.Fatalf("expected the input player back, got %+v", got)
	}
}

func TestMobWinScalesRewardsAndDropsLoot(t *testing.T) {
	p := testHero(t, "a-1", "Aldric")
	store := &fakeStore{}
	rec := &fakeReconciler{}
	d := NewDispatcher(Deps{
		Store:     store,
		Monsters:  &fakeMonsterGen{mob: monster.Monster{Name: "Mountain Yeti", Health: 90, MaxHealth: 90, Gold: 10, Experience: 20}},
		Items:     &fakeItemGen{it: item.Item{Name: "Bent Copper Dagger", Position: item.PositionWeapon}},
		Inventory: inventory.NewManager(),
		Reconcile: rec,
		Simulate:  forcedOutcome(battle.ResultWin, 75, 0),
		Rng:       scriptedRng(0),
		Locale:    "en",
		Log:       quietLogger(),
	})

	got, err := d.AttackMob(context.Background(), "chan-1", p, 3)
	if err != nil {
		t.Fatalf("mob attack: %v", err)
	}

	if got.Gold != 30 || got.Experience != 60 {
		t.Fatalf("expected multiplied rewards 30/60, got %d/%d", got.Gold, got.Experience)
	}
	if got.Kills.Mob != 1 || got.Battles.Won != 1 {
		t.Fatalf("counters wrong: %+v", got)
	}
	if len(got.Inventory) != 1 {
		t.Fatalf("expected dropped loot, got %v", got.Inventory)
	}
	owners := got.Inventory[0].PreviousOwners
	if len(owners) != 1 || owners[0] != "Mountain Yeti" {
		t.Fatalf("drop provenance missing: %v", owners)
	}
	if rec.expChecks != 1 {
		t.Fatalf("expected one experience check, got %d", rec.expChecks)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(store.saved))
	}
}

func TestMobLossRunsHealthReconciliation(t *testing.T) {
	p := testHero(t, "a-1", "Aldric")
	rec := &fakeReconciler{}
	d := NewDispatcher(Deps{
		Store:     &fakeStore{},
		Monsters:  &fakeMonsterGen{mob: monster.Monster{Name: "Mountain Yeti", Health: 90, MaxHealth: 90}},
		Inventory: &fakeInventory{},
		Reconcile: rec,
		Simulate:  forcedOutcome(battle.ResultLost, 0, 50),
		Rng:       scriptedRng(0),
		Locale:    "en",
		Log:       quietLogger(),
	})

	got, err := d.AttackMob(context.Background(), "chan-1", p, 1)
	if err != nil {
		t.Fatalf("mob attack: %v", err)
	}
	if got.Battles.Lost != 1 {
		t.Fatalf("expected a recorded loss: %+v", got)
	}
	if rec.healthChecks != 1 || rec.lastHealthCause != "mob" {
		t.Fatalf("expected a mob health check, got %d (%s)", rec.healthChecks, rec.lastHealthCause)
	}
	if got.Gold != 0 || got.Experience != 0 {
		t.Fatalf("loss must not grant rewards: %+v", got)
	}
}

func TestMobFleeChecksExperienceOnly(t *testing.T) {
	p := testHero(t, "a-1", "Aldric")
	rec := &fakeReconciler{}
	d := NewDispatcher(Deps{
		Store:     &fakeStore{},
		Monsters:  &fakeMonsterGen{mob: monster.Monster{Name: "Ravenous Wolf", Health: 40, MaxHealth: 40, Gold: 10, Experience: 20}},
		Inventory: &fakeInventory{},
		Reconcile: rec,
		Simulate:  forcedOutcome(battle.ResultFled, 20, 30),
		Rng:       scriptedRng(0),
		Locale:    "en",
		Log:       quietLogger(),
	})

	got, err := d.AttackMob(context.Background(), "chan-1", p, 1)
	if err != nil {
		t.Fatalf("mob attack: %v", err)
	}
	if got.Gold != 0 || len(got.Inventory) != 0 {
		t.Fatalf("flee must not grant loot: %+v", got)
	}
	if rec.expChecks != 1 || rec.healthChecks != 0 {
		t.Fatalf("expected experience check only, got exp=%d health=%d", rec.expChecks, rec.healthChecks)
	}
}

func TestMobGenerationFailurePropagates(t *testing.T) {
	p := testHero(t, "a-1", "Aldric")
	d := NewDispatcher(Deps{
		Store:     &fakeStore{},
		Monsters:  &fakeMonsterGen{err: errors.New("no spawn table")},
		Inventory: &fakeInventory{},
		Reconcile: &fakeReconciler{},
		Rng:       scriptedRng(0),
		Locale:    "en",
		Log:       quietLogger(),
	})

	if _, err := d.AttackMob(context.Background(), "chan-1", p, 1); err == nil {
		t.Fatal("expected generation failure to propagate")
	}
}

func TestMobSaveFailurePropagates(t *testing.T) {
	p := testHero(t, "a-1", "Aldric")
	d := NewDispatcher(Deps{
		Store:     &fakeStore{saveErr: errors.New("store unreachable")},
		Monsters:  &fakeMonsterGen{mob: monster.Monster{Name: "Ravenous Wolf", Health: 40, MaxHealth: 40}},
		Items:     &fakeItemGen{it: item.Item{Name: "Bent Copper Dagger", Position: item.PositionWeapon}},
		Inventory: &fakeInventory{},
		Reconcile: &fakeReconciler{},
		Simulate:  forcedOutcome(battle.ResultWin, 75, 0),
		Rng:       scriptedRng(0),
		Locale:    "en",
		Log:       quietLogger(),
	})

	if _, err := d.AttackMob(context.Background(), "chan-1", p, 1); err == nil {
		t.Fatal("expected save failure to propagate")
	}
}
