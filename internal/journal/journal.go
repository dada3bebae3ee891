// Package journal provides SQLite-backed recording of tick streams.
//
// A journal holds one or more sessions; each session is an ordered log
// of tick records as received from the engine. Appends are idempotent
// per frame token, so re-recording an already-journaled frame is a
// no-op. Reads return ticks in write order, which makes a journaled
// session a deterministic input for replay.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vantage-sim/vantage/internal/tick"
)

//go:embed schema.sql
var schemaSQL string

const currentSchemaVersion = 1

// Journal is a durable tick log.
type Journal struct {
	db *sql.DB
}

// Open creates or opens a journal database at path, applying pragmas
// and schema idempotently.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		db.Close()
		return nil, fmt.Errorf("set user_version: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Append records one tick under a session. Returns inserted=false when
// the frame token was already journaled for the session (idempotent
// re-record).
func (j *Journal) Append(ctx context.Context, sessionID string, t *tick.Tick) (inserted bool, err error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return false, fmt.Errorf("marshal tick %d: %w", t.TickID, err)
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (session_id) VALUES (?)`, sessionID); err != nil {
		return false, fmt.Errorf("upsert session: %w", err)
	}

	var next int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM ticks WHERE session_id = ?`, sessionID).Scan(&next); err != nil {
		return false, fmt.Errorf("next seq: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO ticks (session_id, seq, tick_id, frame_id, state_hash, frame_token, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sessionID, next, t.TickID, t.FrameID, t.StateHash, t.FrameToken(), string(payload))
	if err != nil {
		return false, fmt.Errorf("append tick: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit append: %w", err)
	}
	return n > 0, nil
}

// ReadSession returns a session's ticks in write order.
func (j *Journal) ReadSession(ctx context.Context, sessionID string) ([]*tick.Tick, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT payload FROM ticks WHERE session_id = ? ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var out []*tick.Tick
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan tick: %w", err)
		}
		var t tick.Tick
		if err := json.Unmarshal([]byte(payload), &t); err != nil {
			return nil, fmt.Errorf("unmarshal tick: %w", err)
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session %s: %w", sessionID, err)
	}
	return out, nil
}

// Sessions lists journaled session ids in creation order.
func (j *Journal) Sessions(ctx context.Context) ([]string, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT session_id FROM sessions ORDER BY created_at ASC, session_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

// Len returns the number of ticks journaled for a session.
func (j *Journal) Len(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := j.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ticks WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count session %s: %w", sessionID, err)
	}
	return n, nil
}
