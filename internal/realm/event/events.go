package event

import (
	"context"
	"fmt"

	"github.com/louisbranch/idlerealm/internal/core/dice"
	"github.com/louisbranch/idlerealm/internal/notify"
	"github.com/louisbranch/idlerealm/internal/notify/render"
	"github.com/louisbranch/idlerealm/internal/realm/player"
	"github.com/louisbranch/idlerealm/internal/realm/reconcile"
)

// The six deities of the luck pantheon. The switch over them is exhaustive;
// adding a god means adding a case.
const (
	godHades = iota + 1
	godZeus
	godAseco
	godHermes
	godAthena
	godEris
)

const (
	// luckSpellBandPct is the base width of the spell band in the luck item
	// ladder; the item band is the same width stacked on top.
	luckSpellBandPct = 15
	luckItemBandPct  = 15
	snowflakePct     = 5
)

// MoveEvent relocates the player to a uniformly chosen different map and
// announces the move. No battle is involved.
func (d *Dispatcher) MoveEvent(ctx context.Context, channelID string, p player.Player) (player.Player, error) {
	dest, err := d.atlas.PickNewMap(d.rng, p.Map)
	if err != nil {
		return p, fmt.Errorf("pick destination: %w", err)
	}

	p.Map = dest.Name
	p.Events++
	saved, err := d.store.SavePlayer(ctx, p)
	if err != nil {
		return p, fmt.Errorf("save player: %w", err)
	}

	d.emit(ctx, "event.move", saved.ID, dest.Name)
	d.announce(ctx, channelID, saved.ID, notify.StyleEvent, false,
		render.KeyMove, saved.Name, dest.Name)
	return saved, nil
}

// GenerateTownItem lets a player in town buy a generated item if they can
// afford it. Outside town, or when the player is broke, nothing happens.
func (d *Dispatcher) GenerateTownItem(ctx context.Context, channelID string, p player.Player) (player.Player, error) {
	if !d.atlas.IsTown(p.Map) {
		return p, nil
	}

	it, err := d.items.Generate(d.rng, p.Level, "")
	if err != nil {
		return p, fmt.Errorf("generate town item: %w", err)
	}
	if p.Gold < it.Gold {
		return p, nil
	}

	p.Gold -= it.Gold
	p.Events++
	if d.inventory.Add(&p, it) {
		d.announce(ctx, channelID, p.ID, notify.StyleAction, false,
			render.KeyTownItem, p.Name, it.Name)
	} else {
		p.Gold += it.Gold
		d.announce(ctx, channelID, p.ID, notify.StyleAction, false,
			render.KeyInventoryFull, p.Name, it.Name)
	}

	saved, err := d.store.SavePlayer(ctx, p)
	if err != nil {
		return p, fmt.Errorf("save player: %w", err)
	}
	return saved, nil
}

// SellInTown sells the player's whole inventory at the town market.
func (d *Dispatcher) SellInTown(ctx context.Context, channelID string, p player.Player) (player.Player, error) {
	if !d.atlas.IsTown(p.Map) {
		return p, nil
	}

	gold := d.inventory.SellAll(&p)
	if gold == 0 {
		return p, nil
	}

	p.Events++
	saved, err := d.store.SavePlayer(ctx, p)
	if err != nil {
		return p, fmt.Errorf("save player: %w", err)
	}

	d.announce(ctx, channelID, saved.ID, notify.StyleAction, false,
		render.KeyTownSell, saved.Name, gold)
	return saved, nil
}

// Camp rests a player in town, recovering a rolled amount of health up to
// their maximum.
func (d *Dispatcher) Camp(ctx context.Context, channelID string, p player.Player) (player.Player, error) {
	if !d.atlas.IsTown(p.Map) {
		return p, nil
	}

	roll, err := dice.Between(d.rng, 5, 10+p.Stats.End*2)
	if err != nil {
		return p, fmt.Errorf("roll recovery: %w", err)
	}

	recovered := roll
	if p.Health+recovered > p.MaxHealth() {
		recovered = p.MaxHealth() - p.Health
	}
	if recovered <= 0 {
		return p, nil
	}

	p.Health += recovered
	p.Events++
	saved, err := d.store.SavePlayer(ctx, p)
	if err != nil {
		return p, fmt.Errorf("save player: %w", err)
	}

	d.announce(ctx, channelID, saved.ID, notify.StyleAction, false,
		render.KeyCamp, saved.Name, recovered)
	return saved, nil
}

// GenerateGodsEvent fires exactly one deity effect, drawn uniformly over the
// six-member pantheon.
func (d *Dispatcher) GenerateGodsEvent(ctx context.Context, channelID string, p player.Player) (player.Player, error) {
	draw, err := dice.Between(d.rng, godHades, godEris)
	if err != nil {
		return p, fmt.Errorf("draw deity: %w", err)
	}
	p.Events++
	d.emit(ctx, "event.gods", p.ID, fmt.Sprintf("deity %d", draw))

	switch draw {
	case godHades:
		toll, err := dice.Between(d.rng, 5, 5+p.Level*5)
		if err != nil {
			return p, fmt.Errorf("roll toll: %w", err)
		}
		if toll > p.Gold {
			toll = p.Gold
		}
		p.Gold -= toll
		d.announce(ctx, channelID, p.ID, notify.StyleEvent, p.MentionInChat,
			render.KeyGodsHades, toll, p.Name)

	case godZeus:
		bolt, err := dice.Between(d.rng, 5, 5+p.Level*5)
		if err != nil {
			return p, fmt.Errorf("roll bolt: %w", err)
		}
		p.Health -= bolt
		d.announce(ctx, channelID, p.ID, notify.StyleEvent, p.MentionInChat,
			render.KeyGodsZeus, p.Name, bolt)
		d.reconcile.CheckHealth(ctx, channelID, &p, reconcile.CauseMob, "Zeus")

	case godAseco:
		reward, err := dice.Between(d.rng, 5, 5+p.Level*10)
		if err != nil {
			return p, fmt.Errorf("roll reward: %w", err)
		}
		p.Gold += reward
		d.announce(ctx, channelID, p.ID, notify.StyleEvent, p.MentionInChat,
			render.KeyGodsAseco, p.Name, reward)

	case godHermes:
		p.Stats.Dex++
		d.announce(ctx, channelID, p.ID, notify.StyleEvent, p.MentionInChat,
			render.KeyGodsHermes, p.Name)

	case godAthena:
		grant, err := dice.Between(d.rng, 10, 10+p.Level*20)
		if err != nil {
			return p, fmt.Errorf("roll grant: %w", err)
		}
		p.Experience += grant
		d.announce(ctx, channelID, p.ID, notify.StyleEvent, p.MentionInChat,
			render.KeyGodsAthena, p.Name, grant)
		d.reconcile.CheckExperience(ctx, channelID, &p)

	case godEris:
		sp, err := d.spells.Generate(d.rng, p)
		if err != nil {
			return p, fmt.Errorf("generate curse spell: %w", err)
		}
		d.announce(ctx, channelID, p.ID, notify.StyleEvent, p.MentionInChat,
			render.KeyGodsEris, p.Name, sp.Name)
	}

	saved, err := d.store.SavePlayer(ctx, p)
	if err != nil {
		return p, fmt.Errorf("save player: %w", err)
	}
	return saved, nil
}

// GenerateGold credits a rolled purse of gold scaled by the multiplier.
func (d *Dispatcher) GenerateGold(ctx context.Context, channelID string, p player.Player, multiplier int) (player.Player, error) {
	amount, err := dice.Between(d.rng, 5, 5+p.Level*10)
	if err != nil {
		return p, fmt.Errorf("roll gold: %w", err)
	}
	amount *= normalizeMultiplier(multiplier)

	p.Gold += amount
	p.Events++
	saved, err := d.store.SavePlayer(ctx, p)
	if err != nil {
		return p, fmt.Errorf("save player: %w", err)
	}

	d.announce(ctx, channelID, saved.ID, notify.StyleEvent, false,
		render.KeyGold, saved.Name, amount)
	return saved, nil
}

// GenerateLuckItem runs the two-tier probability ladder over one uniform
// draw in [0,100): the first 15 + luck/4 percentiles grant a spell, the next
// 15 grant an item, the rest is a no-op. Higher luck strictly widens both
// favorable bands.
func (d *Dispatcher) GenerateLuckItem(ctx context.Context, channelID string, p player.Player) (player.Player, error) {
	draw := dice.Percent(d.rng)
	spellBound := luckSpellBandPct + p.Stats.Luck/4
	itemBound := spellBound + luckItemBandPct

	switch {
	case draw < spellBound:
		sp, err := d.spells.Generate(d.rng, p)
		if err != nil {
			return p, fmt.Errorf("generate spell: %w", err)
		}
		p.SpellsCast++
		p.Events++
		d.announce(ctx, channelID, p.ID, notify.StyleEvent, false,
			render.KeyLuckSpell, p.Name, sp.Name)

	case draw < itemBound:
		it, err := d.items.Generate(d.rng, p.Level, "")
		if err != nil {
			return p, fmt.Errorf("generate item: %w", err)
		}
		p.Events++
		if d.inventory.Add(&p, it) {
			d.announce(ctx, channelID, p.ID, notify.StyleEvent, false,
				render.KeyLuckItem, p.Name, it.Name)
		} else {
			d.announce(ctx, channelID, p.ID, notify.StyleEvent, false,
				render.KeyInventoryFull, p.Name, it.Name)
		}

	default:
		return p, nil
	}

	saved, err := d.store.SavePlayer(ctx, p)
	if err != nil {
		return p, fmt.Errorf("save player: %w", err)
	}
	return saved, nil
}

// GenerateGambling wagers a rolled stake of the player's gold on a coin
// flip. Broke players sit the round out.
func (d *Dispatcher) GenerateGambling(ctx context.Context, channelID string, p player.Player, multiplier int) (player.Player, error) {
	if p.Gold <= 0 {
		return p, nil
	}

	wager, err := dice.Between(d.rng, 5, 5+p.Level*10)
	if err != nil {
		return p, fmt.Errorf("roll wager: %w", err)
	}
	wager *= normalizeMultiplier(multiplier)
	if wager > p.Gold {
		wager = p.Gold
	}

	p.Gambles++
	p.Events++
	if dice.Chance(d.rng, 50) {
		p.Gold += wager
		d.announce(ctx, channelID, p.ID, notify.StyleAction, false,
			render.KeyGambleWin, p.Name, wager)
	} else {
		p.Gold -= wager
		d.announce(ctx, channelID, p.ID, notify.StyleAction, false,
			render.KeyGambleLost, p.Name, wager)
	}

	saved, err := d.store.SavePlayer(ctx, p)
	if err != nil {
		return p, fmt.Errorf("save player: %w", err)
	}
	return saved, nil
}

// BlizzardSwitch sets the process-wide blizzard flag and returns the
// resulting state. The switch is idempotent: a redundant same-state call
// returns the current state and issues no announcement.
func (d *Dispatcher) BlizzardSwitch(ctx context.Context, channelID string, desired bool) bool {
	if d.blizzard == desired {
		return d.blizzard
	}
	d.blizzard = desired

	key := render.KeyBlizzardOff
	if desired {
		key = render.KeyBlizzardOn
	}
	d.announce(ctx, channelID, "", notify.StyleBroadcast, false, key)
	d.emit(ctx, "event.blizzard", "", fmt.Sprintf("active=%t", desired))
	return d.blizzard
}

// BlizzardActive reads the blizzard flag.
func (d *Dispatcher) BlizzardActive() bool {
	return d.blizzard
}

// ChanceToCatchSnowflake gives the player a small shot at a permanent luck
// point. Fire-and-forget: every failure is logged and none reaches the
// caller.
func (d *Dispatcher) ChanceToCatchSnowflake(ctx context.Context, channelID string, p player.Player) {
	if !dice.Chance(d.rng, snowflakePct) {
		return
	}

	p.Stats.Luck++
	if _, err := d.store.SavePlayer(ctx, p); err != nil {
		d.log.WithError(err).WithField("player", p.ID).Warn("snowflake save failed")
		return
	}
	d.announce(ctx, channelID, p.ID, notify.StyleEvent, false,
		render.KeySnowflake, p.Name)
}

// RegenEquipment rebuilds the stats of every worn non-placeholder item for
// the player's current level, keeping names and ownership history intact.
func (d *Dispatcher) RegenEquipment(ctx context.Context, p player.Player) (player.Player, error) {
	var err error
	if p.Equipment.Helmet, err = d.items.RegenerateByName(d.rng, p.Equipment.Helmet, p.Level); err != nil {
		return p, fmt.Errorf("regenerate helmet: %w", err)
	}
	if p.Equipment.Armor, err = d.items.RegenerateByName(d.rng, p.Equipment.Armor, p.Level); err != nil {
		return p, fmt.Errorf("regenerate armor: %w", err)
	}
	if p.Equipment.Weapon, err = d.items.RegenerateByName(d.rng, p.Equipment.Weapon, p.Level); err != nil {
		return p, fmt.Errorf("regenerate weapon: %w", err)
	}

	saved, err := d.store.SavePlayer(ctx, p)
	if err != nil {
		return p, fmt.Errorf("save player: %w", err)
	}
	return saved, nil
}
