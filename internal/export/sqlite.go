package export

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/iksnae/chat-history/internal"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE metadata (
	key   TEXT PRIMARY KEY,
	value TEXT
);
CREATE TABLE messages (
	id                  INTEGER PRIMARY KEY,
	identity_key        TEXT NOT NULL,
	role                TEXT NOT NULL,
	timestamp           TEXT,
	session_id          TEXT,
	project             TEXT,
	source_file         TEXT,
	source_schema       TEXT NOT NULL,
	agent               INTEGER NOT NULL DEFAULT 0,
	has_tool_invocation INTEGER NOT NULL DEFAULT 0,
	has_tool_result     INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE content_blocks (
	message_id  INTEGER NOT NULL REFERENCES messages(id),
	position    INTEGER NOT NULL,
	type        TEXT NOT NULL,
	text        TEXT,
	thinking    TEXT,
	tool_id     TEXT,
	tool_name   TEXT,
	input       TEXT,
	tool_use_id TEXT,
	output      TEXT,
	is_error    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (message_id, position)
);
CREATE INDEX idx_messages_session ON messages(session_id);
`

// SQLiteExporter exports transcripts as a self-contained SQLite database
type SQLiteExporter struct{}

// Export builds the database in a temporary file and streams it to w
func (e *SQLiteExporter) Export(t *Transcript, w io.Writer) error {
	tmp, err := os.CreateTemp("", "chat-history-*.db")
	if err != nil {
		return &internal.ExportError{Format: "sqlite", Err: fmt.Errorf("failed to create temp database: %w", err)}
	}
	path := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(path) }()

	if err := WriteDatabase(context.Background(), path, t); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return &internal.ExportError{Format: "sqlite", Path: path, Err: err}
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return &internal.ExportError{Format: "sqlite", Path: path, Err: err}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *SQLiteExporter) Extension() string {
	return "db"
}

// WriteDatabase writes a transcript into a new SQLite database at path
func WriteDatabase(ctx context.Context, path string, t *Transcript) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &internal.ExportError{Format: "sqlite", Path: path, Err: fmt.Errorf("failed to open database: %w", err)}
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return &internal.ExportError{Format: "sqlite", Path: path, Err: fmt.Errorf("failed to create schema: %w", err)}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &internal.ExportError{Format: "sqlite", Path: path, Err: err}
	}
	if err := insertTranscript(ctx, tx, t); err != nil {
		_ = tx.Rollback()
		return &internal.ExportError{Format: "sqlite", Path: path, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &internal.ExportError{Format: "sqlite", Path: path, Err: fmt.Errorf("commit failed: %w", err)}
	}

	internal.LogDebug("Wrote %d messages to %s", len(t.Messages), path)
	return nil
}

func insertTranscript(ctx context.Context, tx *sql.Tx, t *Transcript) error {
	metadata := map[string]string{
		"session":       t.ID,
		"source":        t.Source,
		"exported_at":   t.ExportedAt.Format("2006-01-02T15:04:05Z07:00"),
		"message_count": fmt.Sprint(len(t.Messages)),
	}
	for key, value := range metadata {
		if _, err := tx.ExecContext(ctx, "INSERT INTO metadata (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("insert metadata %s: %w", key, err)
		}
	}

	msgStmt, err := tx.PrepareContext(ctx, `INSERT INTO messages
		(id, identity_key, role, timestamp, session_id, project, source_file, source_schema, agent, has_tool_invocation, has_tool_result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare messages: %w", err)
	}
	defer msgStmt.Close()

	blockStmt, err := tx.PrepareContext(ctx, `INSERT INTO content_blocks
		(message_id, position, type, text, thinking, tool_id, tool_name, input, tool_use_id, output, is_error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare content_blocks: %w", err)
	}
	defer blockStmt.Close()

	for i, msg := range t.Messages {
		id := i + 1
		if _, err := msgStmt.ExecContext(ctx, id, msg.IdentityKey, string(msg.Role), timestampString(msg),
			msg.SessionID, msg.Project, msg.SourceFile, msg.Schema.String(),
			msg.Agent, msg.HasToolInvocation, msg.HasToolResult); err != nil {
			return fmt.Errorf("insert message %d: %w", id, err)
		}

		for pos, block := range t.Blocks(msg) {
			var input sql.NullString
			if len(block.Input) > 0 {
				data, err := json.Marshal(block.Input, json.Deterministic(true))
				if err != nil {
					return fmt.Errorf("encode input of message %d: %w", id, err)
				}
				input = sql.NullString{String: string(data), Valid: true}
			}
			if _, err := blockStmt.ExecContext(ctx, id, pos, block.Type, block.Text, block.Thinking,
				block.ToolID, block.ToolName, input, block.ToolUseID, block.Output, block.IsError); err != nil {
				return fmt.Errorf("insert block %d of message %d: %w", pos, id, err)
			}
		}
	}

	return nil
}
