// Package battle simulates one combat encounter between two combat-capable
// entities and returns a structured outcome.
//
// # Determinism
//
// Simulate is deterministic with respect to the provided *rand.Rand. Given
// the same source state and the same combatants, it always produces the same
// outcome.
//
// # Ownership
//
// Inputs are taken by value and never mutated; callers must use the updated
// copies carried in the returned Outcome, not the values they passed in.
package battle

import (
	"math/rand"

	"github.com/louisbranch/idlerealm/internal/core/dice"
	apperrors "github.com/louisbranch/idlerealm/internal/platform/errors"
)

// Result tags the outcome of a battle from the attacker's perspective.
type Result string

const (
	// ResultNone is the zero value carried by pass-through outcomes that
	// were not produced by a simulation.
	ResultNone Result = ""
	// ResultWin means the defender was defeated.
	ResultWin Result = "win"
	// ResultLost means the attacker was defeated.
	ResultLost Result = "lost"
	// ResultFled means one side broke off before a kill.
	ResultFled Result = "fled"
)

var (
	// ErrDeadCombatants indicates both entities entered the battle with no
	// health; simulating such a fight is a precondition violation.
	ErrDeadCombatants = apperrors.New(apperrors.CodeBattleDeadCombatants, "both combatants are already dead")
	// ErrMissingRng indicates the caller did not provide a random source.
	ErrMissingRng = apperrors.New(apperrors.CodeBattleMissingRng, "random source is required")
)

const (
	// maxRounds bounds the simulation so stalemate stat configurations
	// cannot loop forever.
	maxRounds = 30
	// fleeHealthPct is the health percentage at or under which a side
	// starts rolling flee checks.
	fleeHealthPct = 25
	baseFleePct   = 10
	maxFleePct    = 50
)

// Combatant is the combat-relevant view of a player or monster.
type Combatant struct {
	Name      string
	Health    int
	MaxHealth int
	Attack    int
	Defense   int
	Agility   int
	Luck      int
}

// Outcome is the tagged result of one simulated battle. Attacker and
// Defender carry the updated post-battle states.
type Outcome struct {
	Result   Result
	Attacker Combatant
	Defender Combatant
	// FledBy names the side that broke off when Result is ResultFled.
	FledBy string
	// Rounds is how many full rounds resolved before termination.
	Rounds int
}

// Simulate resolves one encounter between attacker and defender.
//
// Each round both sides act in turn: a hurt side first rolls a flee check,
// short-circuiting the fight, otherwise it lands a damage roll reduced by the
// target's defense. The loop ends when a side's health reaches zero or the
// round bound is hit; a bounded stalemate resolves as a flight by whichever
// side kept the smaller share of its health, so a win or loss always leaves
// the losing side at zero health or below.
func Simulate(rng *rand.Rand, attacker, defender Combatant) (Outcome, error) {
	if rng == nil {
		return Outcome{}, ErrMissingRng
	}
	if attacker.Health <= 0 && defender.Health <= 0 {
		return Outcome{}, ErrDeadCombatants
	}

	// One side already down resolves without any rolls.
	if defender.Health <= 0 {
		return Outcome{Result: ResultWin, Attacker: attacker, Defender: defender}, nil
	}
	if attacker.Health <= 0 {
		return Outcome{Result: ResultLost, Attacker: attacker, Defender: defender}, nil
	}

	for round := 1; round <= maxRounds; round++ {
		for _, turn := range []struct {
			striker *Combatant
			target  *Combatant
		}{
			{&attacker, &defender},
			{&defender, &attacker},
		} {
			if fled(rng, *turn.striker) {
				return Outcome{
					Result:   ResultFled,
					Attacker: attacker,
					Defender: defender,
					FledBy:   turn.striker.Name,
					Rounds:   round,
				}, nil
			}

			turn.target.Health -= damage(rng, *turn.striker, *turn.target)
			if turn.target.Health <= 0 {
				result := ResultWin
				if turn.target == &attacker {
					result = ResultLost
				}
				return Outcome{
					Result:   result,
					Attacker: attacker,
					Defender: defender,
					Rounds:   round,
				}, nil
			}
		}
	}

	return stalemate(attacker, defender), nil
}

// fled rolls a break-off check for a side that has dropped to a quarter of
// its health or less.
func fled(rng *rand.Rand, c Combatant) bool {
	if c.MaxHealth <= 0 || c.Health*100 > fleeHealthPct*c.MaxHealth {
		return false
	}
	pct := baseFleePct + c.Agility/2
	if pct > maxFleePct {
		pct = maxFleePct
	}
	return dice.Chance(rng, pct)
}

// damage rolls the striker's hit and the target's mitigation; a landed hit
// always costs at least one health.
func damage(rng *rand.Rand, striker, target Combatant) int {
	attack := striker.Attack
	if attack < 1 {
		attack = 1
	}
	roll, err := dice.Between(rng, (attack+1)/2, attack+striker.Luck/2)
	if err != nil {
		roll = attack
	}
	mitigation, err := dice.Between(rng, 0, target.Defense/2)
	if err != nil {
		mitigation = 0
	}
	dmg := roll - mitigation
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// stalemate resolves a bounded fight where nobody dropped. Both sides are
// still standing, so neither can be tagged the winner; the side that kept
// the smaller share of its health breaks off, a perfect tie falls to the
// attacker.
func stalemate(attacker, defender Combatant) Outcome {
	out := Outcome{
		Result:   ResultFled,
		Attacker: attacker,
		Defender: defender,
		Rounds:   maxRounds,
	}

	attackerShare := attacker.Health * defenderMax(defender)
	defenderShare := defender.Health * defenderMax(attacker)
	if defenderShare < attackerShare {
		out.FledBy = defender.Name
	} else {
		out.FledBy = attacker.Name
	}
	return out
}

func defenderMax(c Combatant) int {
	if c.MaxHealth <= 0 {
		return 1
	}
	return c.MaxHealth
}
