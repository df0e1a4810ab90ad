package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_contents",
		SQL: `CREATE TABLE IF NOT EXISTS contents (
  id              UUID        PRIMARY KEY,
  owner_id        TEXT        NOT NULL,
  subject_id      TEXT        NOT NULL,
  title           TEXT        NOT NULL,
  filename        TEXT        NOT NULL,
  approval_status TEXT        NOT NULL DEFAULT 'pending',
  storage_key     TEXT        NOT NULL UNIQUE,
  mime_type       TEXT        NOT NULL,
  byte_size       BIGINT      NOT NULL CHECK (byte_size >= 0),
  page_count      INTEGER,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_contents_subject_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_contents_subject_id ON contents (subject_id);`,
	},
	{
		Name: "create_index_contents_owner_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_contents_owner_id ON contents (owner_id);`,
	},
	{
		Name: "create_table_access_log",
		SQL: `CREATE TABLE IF NOT EXISTS access_log (
  id          UUID        PRIMARY KEY,
  content_id  UUID        NOT NULL REFERENCES contents (id) ON DELETE CASCADE,
  user_id     TEXT        NOT NULL,
  action      TEXT        NOT NULL,
  ip_address  TEXT,
  user_agent  TEXT,
  occurred_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		// Serves the per-user and per-user-per-content quota window counts.
		Name: "create_index_access_log_user_window",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_access_log_user_window ON access_log (user_id, action, occurred_at);`,
	},
	{
		Name: "create_index_access_log_content",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_access_log_content ON access_log (content_id, occurred_at);`,
	},
	{
		Name: "create_table_subject_members",
		SQL: `CREATE TABLE IF NOT EXISTS subject_members (
  subject_id TEXT        NOT NULL,
  user_id    TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (subject_id, user_id)
);`,
	},
	{
		Name: "create_index_subject_members_user",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_subject_members_user ON subject_members (user_id);`,
	},
}

// EnsureMigrated checks whether the 'contents' sentinel table exists and runs
// the schema steps if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.contents') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
