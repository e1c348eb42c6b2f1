// Package sqlite provides the SQLite-backed implementation of the storage
// contracts.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	apperrors "github.com/louisbranch/idlerealm/internal/platform/errors"
	"github.com/louisbranch/idlerealm/internal/realm/item"
	"github.com/louisbranch/idlerealm/internal/realm/player"
	"github.com/louisbranch/idlerealm/internal/realm/worldmap"
	"github.com/louisbranch/idlerealm/internal/storage"
)

//go:embed schema.sql
var schema string

// Store provides a SQLite-backed store implementing PlayerStore and
// TelemetryStore.
type Store struct {
	db *sql.DB
}

// Open opens a SQLite store at the provided path and applies the embedded
// schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStoreUnavailable, "open sqlite db", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(apperrors.CodeStoreUnavailable, "ping sqlite db", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying SQLite database.
//
// Close is intentionally nil-safe so callers can defer it in all startup paths.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

const playerColumns = `id, name, gender, mention, map, health, level, experience, gold,
	stats, equipment, inventory,
	events, gambles, stole, stolen, spells_cast,
	kills_mob, kills_player, battles_won, battles_lost, deaths_mob, deaths_player,
	online, created_at`

type playerRow struct {
	stats     string
	equipment string
	inventory string
	mention   int64
	online    int64
	createdAt int64
}

func scanPlayer(scan func(dest ...any) error) (player.Player, error) {
	var p player.Player
	var row playerRow
	err := scan(
		&p.ID, &p.Name, &p.Gender, &row.mention, &p.Map, &p.Health, &p.Level, &p.Experience, &p.Gold,
		&row.stats, &row.equipment, &row.inventory,
		&p.Events, &p.Gambles, &p.Stole, &p.Stolen, &p.SpellsCast,
		&p.Kills.Mob, &p.Kills.Player, &p.Battles.Won, &p.Battles.Lost, &p.Deaths.Mob, &p.Deaths.Player,
		&row.online, &row.createdAt,
	)
	if err != nil {
		return player.Player{}, err
	}

	if err := json.Unmarshal([]byte(row.stats), &p.Stats); err != nil {
		return player.Player{}, fmt.Errorf("decode stats for %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(row.equipment), &p.Equipment); err != nil {
		return player.Player{}, fmt.Errorf("decode equipment for %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(row.inventory), &p.Inventory); err != nil {
		return player.Player{}, fmt.Errorf("decode inventory for %s: %w", p.ID, err)
	}
	if p.Inventory == nil {
		p.Inventory = []item.Item{}
	}
	p.MentionInChat = row.mention != 0
	p.Online = row.online != 0
	p.CreatedAt = fromMillis(row.createdAt)
	return p, nil
}

func encodePlayer(p player.Player) (stats, equipment, inventory string, err error) {
	statsJSON, err := json.Marshal(p.Stats)
	if err != nil {
		return "", "", "", fmt.Errorf("encode stats: %w", err)
	}
	equipJSON, err := json.Marshal(p.Equipment)
	if err != nil {
		return "", "", "", fmt.Errorf("encode equipment: %w", err)
	}
	if p.Inventory == nil {
		p.Inventory = []item.Item{}
	}
	invJSON, err := json.Marshal(p.Inventory)
	if err != nil {
		return "", "", "", fmt.Errorf("encode inventory: %w", err)
	}
	return string(statsJSON), string(equipJSON), string(invJSON), nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// CreatePlayer inserts a new player record.
func (s *Store) CreatePlayer(ctx context.Context, p player.Player) (player.Player, error) {
	return s.upsert(ctx, p)
}

// SavePlayer upserts the full record and returns the persisted state.
func (s *Store) SavePlayer(ctx context.Context, p player.Player) (player.Player, error) {
	return s.upsert(ctx, p)
}

func (s *Store) upsert(ctx context.Context, p player.Player) (player.Player, error) {
	if p.ID == "" {
		return player.Player{}, player.ErrEmptyID
	}
	stats, equipment, inventory, err := encodePlayer(p)
	if err != nil {
		return player.Player{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO players (`+playerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			gender = excluded.gender,
			mention = excluded.mention,
			map = excluded.map,
			health = excluded.health,
			level = excluded.level,
			experience = excluded.experience,
			gold = excluded.gold,
			stats = excluded.stats,
			equipment = excluded.equipment,
			inventory = excluded.inventory,
			events = excluded.events,
			gambles = excluded.gambles,
			stole = excluded.stole,
			stolen = excluded.stolen,
			spells_cast = excluded.spells_cast,
			kills_mob = excluded.kills_mob,
			kills_player = excluded.kills_player,
			battles_won = excluded.battles_won,
			battles_lost = excluded.battles_lost,
			deaths_mob = excluded.deaths_mob,
			deaths_player = excluded.deaths_player,
			online = excluded.online,
			created_at = excluded.created_at`,
		p.ID, p.Name, p.Gender, boolToInt(p.MentionInChat), p.Map, p.Health, p.Level, p.Experience, p.Gold,
		stats, equipment, inventory,
		p.Events, p.Gambles, p.Stole, p.Stolen, p.SpellsCast,
		p.Kills.Mob, p.Kills.Player, p.Battles.Won, p.Battles.Lost, p.Deaths.Mob, p.Deaths.Player,
		boolToInt(p.Online), toMillis(p.CreatedAt),
	)
	if err != nil {
		return player.Player{}, fmt.Errorf("save player %s: %w", p.ID, err)
	}
	return p, nil
}

// Player loads one record by external id.
func (s *Store) Player(ctx context.Context, id string) (player.Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	p, err := scanPlayer(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return player.Player{}, storage.ErrNotFound
	}
	if err != nil {
		return player.Player{}, fmt.Errorf("load player %s: %w", id, err)
	}
	return p, nil
}

// SameMapPlayers lists every player currently on the named map.
func (s *Store) SameMapPlayers(ctx context.Context, mapName string) ([]player.Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players WHERE map = ?`, mapName)
	if err != nil {
		return nil, fmt.Errorf("query same-map players: %w", err)
	}
	defer rows.Close()
	return collectPlayers(rows)
}

// OnlinePlayerMaps projects id/name/map for the given players.
func (s *Store) OnlinePlayerMaps(ctx context.Context, ids []string) ([]storage.PlayerMapRecord, error) {
	if len(ids) == 0 {
		return []storage.PlayerMapRecord{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, map FROM players WHERE online = 1 AND id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query online player maps: %w", err)
	}
	defer rows.Close()

	records := []storage.PlayerMapRecord{}
	for rows.Next() {
		var rec storage.PlayerMapRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Map); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Top10 returns up to ten records ordered by the leaderboard kind. Level
// leaderboards break ties on experience, mirroring the progression order.
func (s *Store) Top10(ctx context.Context, kind storage.LeaderboardKind) ([]player.Player, error) {
	var orderBy string
	switch kind {
	case storage.LeaderboardLevel:
		orderBy = "level DESC, experience DESC"
	case storage.LeaderboardGold:
		orderBy = "gold DESC"
	case storage.LeaderboardPlayerKills:
		orderBy = "kills_player DESC"
	case storage.LeaderboardMobKills:
		orderBy = "kills_mob DESC"
	case storage.LeaderboardThefts:
		orderBy = "stole DESC"
	case storage.LeaderboardSpells:
		orderBy = "spells_cast DESC"
	default:
		return nil, storage.ErrUnknownLeaderboard
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players ORDER BY `+orderBy+` LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("query top10 %s: %w", kind, err)
	}
	defer rows.Close()
	return collectPlayers(rows)
}

// ResetPlayer restores one record to the canonical baseline.
func (s *Store) ResetPlayer(ctx context.Context, id string) (player.Player, error) {
	p, err := s.Player(ctx, id)
	if err != nil {
		return player.Player{}, err
	}
	p.ResetToBaseline(worldmap.StarterTown)
	return s.SavePlayer(ctx, p)
}

// ResetAllPlayers restores every record to the canonical baseline.
func (s *Store) ResetAllPlayers(ctx context.Context) (int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players`)
	if err != nil {
		return 0, fmt.Errorf("query players for reset: %w", err)
	}
	players, err := collectPlayers(rows)
	rows.Close()
	if err != nil {
		return 0, err
	}

	var reset int64
	for _, p := range players {
		p.ResetToBaseline(worldmap.StarterTown)
		if _, err := s.upsert(ctx, p); err != nil {
			return reset, err
		}
		reset++
	}
	return reset, nil
}

// DeletePlayer removes one record.
func (s *Store) DeletePlayer(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete player %s: %w", id, err)
	}
	return nil
}

// DeleteAllPlayers removes every record.
func (s *Store) DeleteAllPlayers(ctx context.Context) error {
	if _, err := s.db.Exec(`DELETE FROM players`); err != nil {
		return fmt.Errorf("delete all players: %w", err)
	}
	return nil
}

// AppendTelemetryEvent records one operational event.
func (s *Store) AppendTelemetryEvent(ctx context.Context, evt storage.TelemetryEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO telemetry_events (ts, severity, event, player_id, detail) VALUES (?, ?, ?, ?, ?)`,
		toMillis(evt.Timestamp), string(evt.Severity), evt.Event, evt.PlayerID, evt.Detail,
	)
	if err != nil {
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}

func collectPlayers(rows *sql.Rows) ([]player.Player, error) {
	players := []player.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows.Scan)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
