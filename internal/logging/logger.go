package logging

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Turn is one processed player command: what came in, which tool ran, what
// it produced, and what the player finally saw.
type Turn struct {
	SessionID  string
	Input      string
	ToolName   string
	ToolResult string
	Response   string
	Elapsed    time.Duration
}

// TurnLogger appends every turn to a local SQLite database for later
// inspection. It is an audit trail, not game state: losing it changes
// nothing about a running game.
type TurnLogger struct {
	db *sql.DB
}

func NewTurnLogger(path string) (*TurnLogger, error) {
	if path == "" {
		path = "./turns.db"
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger := &TurnLogger{db: db}
	if err := logger.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return logger, nil
}

func (tl *TurnLogger) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		session_id TEXT NOT NULL,
		player_input TEXT NOT NULL,
		tool_name TEXT NOT NULL,
		tool_result TEXT NOT NULL,
		response TEXT NOT NULL,
		elapsed_ms INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id);
	CREATE INDEX IF NOT EXISTS idx_turns_timestamp ON turns(timestamp);
	`

	_, err := tl.db.Exec(schema)
	return err
}

func (tl *TurnLogger) LogTurn(turn Turn) error {
	_, err := tl.db.Exec(
		`INSERT INTO turns (session_id, player_input, tool_name, tool_result, response, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		turn.SessionID, turn.Input, turn.ToolName, turn.ToolResult, turn.Response,
		turn.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

// RecentTurns returns the newest turns for a session, most recent first.
func (tl *TurnLogger) RecentTurns(sessionID string, limit int) ([]Turn, error) {
	rows, err := tl.db.Query(
		`SELECT session_id, player_input, tool_name, tool_result, response, elapsed_ms
		 FROM turns WHERE session_id = ? ORDER BY id DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		var elapsedMS int64
		if err := rows.Scan(&t.SessionID, &t.Input, &t.ToolName, &t.ToolResult, &t.Response, &elapsedMS); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		t.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

func (tl *TurnLogger) Close() error {
	return tl.db.Close()
}
