// Package storage defines the persistence contracts for player records and
// operational telemetry.
//
// The core does not retry failed persistence calls; implementations must
// surface transport failures distinguishably so callers can tell a missing
// record from an unreachable store.
package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/idlerealm/internal/platform/errors"
	"github.com/louisbranch/idlerealm/internal/realm/player"
)

// ErrNotFound indicates a requested persistence record is missing.
// Callers use this to differentiate between legitimate "no such player"
// states and transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrUnknownLeaderboard indicates an unsupported leaderboard kind.
var ErrUnknownLeaderboard = apperrors.New(apperrors.CodeLeaderboardUnknown, "unknown leaderboard kind")

// LeaderboardKind selects the ordering for Top10 queries.
type LeaderboardKind string

const (
	LeaderboardLevel       LeaderboardKind = "level"
	LeaderboardGold        LeaderboardKind = "gold"
	LeaderboardPlayerKills LeaderboardKind = "kills_player"
	LeaderboardMobKills    LeaderboardKind = "kills_mob"
	LeaderboardThefts      LeaderboardKind = "stole"
	LeaderboardSpells      LeaderboardKind = "spells_cast"
)

// PlayerMapRecord is the slim projection used to place online players.
type PlayerMapRecord struct {
	ID   string
	Name string
	Map  string
}

// PlayerStore persists player records.
type PlayerStore interface {
	// CreatePlayer inserts a new player record.
	CreatePlayer(ctx context.Context, p player.Player) (player.Player, error)
	// Player loads one record by external id, returning ErrNotFound when absent.
	Player(ctx context.Context, id string) (player.Player, error)
	// SavePlayer upserts the full record and returns the persisted state.
	SavePlayer(ctx context.Context, p player.Player) (player.Player, error)
	// SameMapPlayers lists every player currently on the named map.
	SameMapPlayers(ctx context.Context, mapName string) ([]player.Player, error)
	// OnlinePlayerMaps projects id/name/map for the given players.
	OnlinePlayerMaps(ctx context.Context, ids []string) ([]PlayerMapRecord, error)
	// Top10 returns up to ten records ordered by the leaderboard kind.
	Top10(ctx context.Context, kind LeaderboardKind) ([]player.Player, error)
	// ResetPlayer restores one record to the canonical baseline.
	ResetPlayer(ctx context.Context, id string) (player.Player, error)
	// ResetAllPlayers restores every record to the canonical baseline and
	// reports how many were reset.
	ResetAllPlayers(ctx context.Context) (int64, error)
	// DeletePlayer removes one record.
	DeletePlayer(ctx context.Context, id string) error
	// DeleteAllPlayers removes every record.
	DeleteAllPlayers(ctx context.Context) error
}

// Severity grades a telemetry event.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// TelemetryEvent is one operational observation (an event dispatched, a
// battle resolved, a suppressed failure).
type TelemetryEvent struct {
	Timestamp time.Time
	Severity  Severity
	Event     string
	PlayerID  string
	Detail    string
}

// TelemetryStore appends operational telemetry events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, evt TelemetryEvent) error
}
