package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/idlerealm/internal/notify"
	"github.com/louisbranch/idlerealm/internal/notify/render"
	"github.com/louisbranch/idlerealm/internal/realm/battle"
	"github.com/louisbranch/idlerealm/internal/realm/inventory"
	"github.com/louisbranch/idlerealm/internal/realm/player"
	"github.com/louisbranch/idlerealm/internal/realm/reconcile"
)

// pvpExperiencePerLevel sizes the winner's experience reward by the loser's
// level.
const pvpExperiencePerLevel = 20

// AttackPlayerVsPlayer runs a combat tick against another player on the same
// map. When no eligible opponent is present it falls back to a mob encounter;
// a failure inside that fallback is logged and suppressed so it cannot
// double-report into the outer flow, and the player is returned unchanged.
func (d *Dispatcher) AttackPlayerVsPlayer(ctx context.Context, channelID string, p player.Player, onlinePlayers []string, multiplier int) (player.Player, error) {
	sameMap, err := d.store.SameMapPlayers(ctx, p.Map)
	if err != nil {
		return p, fmt.Errorf("query same map players: %w", err)
	}

	candidates := eligibleOpponents(p, sameMap, onlinePlayers)
	if len(candidates) == 0 {
		updated, err := d.AttackMob(ctx, channelID, p, multiplier)
		if err != nil {
			// Bounded failure region: the mob path must not abort the
			// pvp flow it fell back from.
			d.log.WithError(err).WithField("player", p.ID).Warn("mob fallback failed")
			return p, nil
		}
		return updated, nil
	}

	opponent := candidates[d.rng.Intn(len(candidates))]

	out, err := d.simulate(d.rng, playerCombatant(p), playerCombatant(opponent))
	if err != nil {
		return p, fmt.Errorf("simulate pvp battle: %w", err)
	}
	d.emit(ctx, "event.pvp", p.ID, string(out.Result))

	switch out.Result {
	case battle.ResultWin:
		p.Events++
		return d.resolvePvpDefeat(ctx, channelID, out, p, opponent, multiplier, true)
	case battle.ResultLost:
		p.Events++
		return d.resolvePvpDefeat(ctx, channelID, out, p, opponent, multiplier, false)
	case battle.ResultFled:
		p.Events++
		return d.resolvePvpFled(ctx, channelID, out, p, opponent)
	default:
		// Pass-through for outcomes that were not produced by a
		// simulation; the input player comes back untouched.
		return p, nil
	}
}

// resolvePvpDefeat settles a decided pvp battle. The fixed order is steal
// from the loser, reconcile the loser's health, persist the loser, then
// reconcile and persist the winner. attackerWon selects which side is which.
func (d *Dispatcher) resolvePvpDefeat(ctx context.Context, channelID string, out battle.Outcome, attacker, defender player.Player, multiplier int, attackerWon bool) (player.Player, error) {
	attacker.Health = out.Attacker.Health
	defender.Health = out.Defender.Health

	winner, loser := &attacker, &defender
	if !attackerWon {
		winner, loser = &defender, &attacker
	}

	stolen, err := d.inventory.Steal(d.rng, winner, loser)
	switch {
	case errors.Is(err, inventory.ErrNothingToSteal):
		// A loser with bare hands and an empty pack just loses the fight.
	case err != nil:
		return attacker, fmt.Errorf("steal from loser: %w", err)
	default:
		winner.Stole++
		loser.Stolen++
		d.announce(ctx, channelID, winner.ID, notify.StyleAction, winner.MentionInChat,
			render.KeySteal, winner.Name, stolen.Name, loser.Name)
	}

	winner.Kills.Player++
	winner.Battles.Won++
	loser.Battles.Lost++

	d.reconcile.CheckHealth(ctx, channelID, loser, reconcile.CausePlayer, winner.Name)
	saved, err := d.store.SavePlayer(ctx, *loser)
	if err != nil {
		return attacker, fmt.Errorf("save loser: %w", err)
	}
	*loser = saved

	winner.Experience += saved.Level * pvpExperiencePerLevel * normalizeMultiplier(multiplier)
	d.reconcile.CheckExperience(ctx, channelID, winner)
	savedWinner, err := d.store.SavePlayer(ctx, *winner)
	if err != nil {
		return attacker, fmt.Errorf("save winner: %w", err)
	}
	*winner = savedWinner

	if attackerWon {
		d.announce(ctx, channelID, winner.ID, notify.StyleEvent, winner.MentionInChat,
			render.KeyPvpWin, winner.Name, loser.Name)
	} else {
		d.announce(ctx, channelID, loser.ID, notify.StyleEvent, loser.MentionInChat,
			render.KeyPvpLost, loser.Name, winner.Name)
	}
	return attacker, nil
}

// resolvePvpFled settles a broken-off pvp battle. The defender is checked
// and persisted first: the side that avoided the kill is authoritative for
// the persisted save.
func (d *Dispatcher) resolvePvpFled(ctx context.Context, channelID string, out battle.Outcome, attacker, defender player.Player) (player.Player, error) {
	attacker.Health = out.Attacker.Health
	defender.Health = out.Defender.Health

	d.reconcile.CheckExperience(ctx, channelID, &defender)
	if _, err := d.store.SavePlayer(ctx, defender); err != nil {
		return attacker, fmt.Errorf("save defender: %w", err)
	}

	d.reconcile.CheckExperience(ctx, channelID, &attacker)
	saved, err := d.store.SavePlayer(ctx, attacker)
	if err != nil {
		return attacker, fmt.Errorf("save attacker: %w", err)
	}

	d.announce(ctx, channelID, saved.ID, notify.StyleEvent, saved.MentionInChat,
		render.KeyPvpFled, saved.Name, defender.Name, out.FledBy)
	return saved, nil
}

// AttackMob runs a combat tick against a generated monster. Rewards scale
// with the multiplier; a win also drops loot off the fallen mob.
func (d *Dispatcher) AttackMob(ctx context.Context, channelID string, p player.Player, multiplier int) (player.Player, error) {
	mob, err := d.monsters.Generate(d.rng, p)
	if err != nil {
		return p, fmt.Errorf("generate monster: %w", err)
	}

	out, err := d.simulate(d.rng, playerCombatant(p), mobCombatant(mob))
	if err != nil {
		return p, fmt.Errorf("simulate mob battle: %w", err)
	}
	multiplier = normalizeMultiplier(multiplier)
	d.emit(ctx, "event.mob", p.ID, mob.Name)

	switch out.Result {
	case battle.ResultWin:
		p.Events++
		p.Health = out.Attacker.Health
		gold := mob.Gold * multiplier
		exp := mob.Experience * multiplier
		p.Gold += gold
		p.Experience += exp
		p.Kills.Mob++
		p.Battles.Won++
		d.announce(ctx, channelID, p.ID, notify.StyleEvent, p.MentionInChat,
			render.KeyPveWin, p.Name, mob.Name, gold, exp)

		drop, err := d.items.Generate(d.rng, p.Level, "")
		if err != nil {
			return p, fmt.Errorf("generate drop: %w", err)
		}
		if d.inventory.AddLoot(&p, drop, mob.Name) {
			d.announce(ctx, channelID, p.ID, notify.StyleEvent, false,
				render.KeyDrop, mob.Name, drop.Name, p.Name)
		} else {
			d.announce(ctx, channelID, p.ID, notify.StyleEvent, false,
				render.KeyInventoryFull, p.Name, drop.Name)
		}

		d.reconcile.CheckExperience(ctx, channelID, &p)

	case battle.ResultFled:
		p.Events++
		p.Health = out.Attacker.Health
		d.announce(ctx, channelID, p.ID, notify.StyleEvent, false,
			render.KeyPveFled, out.FledBy, mob.Name)
		d.reconcile.CheckExperience(ctx, channelID, &p)

	case battle.ResultLost:
		p.Events++
		p.Health = out.Attacker.Health
		p.Battles.Lost++
		d.announce(ctx, channelID, p.ID, notify.StyleEvent, p.MentionInChat,
			render.KeyPveLost, mob.Name, p.Name)
		d.reconcile.CheckHealth(ctx, channelID, &p, reconcile.CauseMob, mob.Name)

	default:
		return p, nil
	}

	saved, err := d.store.SavePlayer(ctx, p)
	if err != nil {
		return p, fmt.Errorf("save player: %w", err)
	}
	return saved, nil
}

// eligibleOpponents filters same-map players down to live, online opponents
// other than the attacker.
func eligibleOpponents(attacker player.Player, sameMap []player.Player, onlinePlayers []string) []player.Player {
	online := make(map[string]bool, len(onlinePlayers))
	for _, id := range onlinePlayers {
		online[id] = true
	}

	out := make([]player.Player, 0, len(sameMap))
	for _, candidate := range sameMap {
		if candidate.ID == attacker.ID {
			continue
		}
		if !online[candidate.ID] || candidate.Health <= 0 {
			continue
		}
		out = append(out, candidate)
	}
	return out
}
