// Package errors provides structured error handling for the realm services.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Player errors
	CodePlayerEmptyID     Code = "PLAYER_EMPTY_ID"
	CodePlayerEmptyName   Code = "PLAYER_EMPTY_NAME"
	CodePlayerEmptyMap    Code = "PLAYER_EMPTY_MAP"
	CodePlayerInvalidStat Code = "PLAYER_INVALID_STAT"

	// Battle errors
	CodeBattleDeadCombatants Code = "BATTLE_DEAD_COMBATANTS"
	CodeBattleMissingRng     Code = "BATTLE_MISSING_RNG"

	// Event errors
	CodeEventUnknownOutcome Code = "EVENT_UNKNOWN_OUTCOME"
	CodeEventInvalidToggle  Code = "EVENT_INVALID_TOGGLE"

	// Generator errors
	CodeMapNoDestination  Code = "MAP_NO_DESTINATION"
	CodeItemEmptyPosition Code = "ITEM_EMPTY_POSITION"

	// Inventory errors
	CodeInventoryNothingToSteal Code = "INVENTORY_NOTHING_TO_STEAL"

	// Storage errors
	CodeNotFound           Code = "NOT_FOUND"
	CodeStoreUnavailable   Code = "STORE_UNAVAILABLE"
	CodeLeaderboardUnknown Code = "LEADERBOARD_UNKNOWN_KIND"

	// Dice/random errors
	CodeDiceInvalidBounds Code = "DICE_INVALID_BOUNDS"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodePlayerEmptyID,
		CodePlayerEmptyName,
		CodePlayerEmptyMap,
		CodePlayerInvalidStat,
		CodeBattleMissingRng,
		CodeEventInvalidToggle,
		CodeItemEmptyPosition,
		CodeLeaderboardUnknown,
		CodeDiceInvalidBounds:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeBattleDeadCombatants,
		CodeEventUnknownOutcome,
		CodeMapNoDestination,
		CodeInventoryNothingToSteal:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// Unavailable - dependency is unreachable
	case CodeStoreUnavailable:
		return codes.Unavailable

	default:
		return codes.Internal
	}
}
