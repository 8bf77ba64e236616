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
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_enum_document_type",
		SQL: `DO $$ BEGIN
  CREATE TYPE document_type AS ENUM
    ('insurance', 'pollution', 'tax', 'fitness', 'permit', 'aadhar', 'owner_book', 'other');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;`,
	},
	{
		Name: "create_table_vehicles",
		SQL: `CREATE TABLE IF NOT EXISTS vehicles (
  id                  UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  registration_number TEXT        NOT NULL UNIQUE,
  owner_name          TEXT        NOT NULL,
  owner_mobile        TEXT        NOT NULL,
  user_id             TEXT        NOT NULL,
  created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id          UUID          PRIMARY KEY DEFAULT uuid_generate_v4(),
  vehicle_id  UUID          NOT NULL REFERENCES vehicles (id) ON DELETE CASCADE,
  type        document_type NOT NULL,
  expiry_date DATE,
  file_url    TEXT          NOT NULL DEFAULT '',
  notes       TEXT          NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_sessions",
		SQL: `CREATE TABLE IF NOT EXISTS sessions (
  token      UUID        PRIMARY KEY,
  user_id    TEXT        NOT NULL,
  username   TEXT        NOT NULL,
  expires_at TIMESTAMPTZ NOT NULL
);`,
	},
	{
		Name: "create_index_vehicles_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_vehicles_user_id ON vehicles (user_id);`,
	},
	{
		Name: "create_index_vehicles_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_vehicles_created_at ON vehicles (created_at);`,
	},
	{
		Name: "create_index_documents_vehicle_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_vehicle_id ON documents (vehicle_id);`,
	},
	{
		Name: "create_index_documents_expiry_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_expiry_date ON documents (expiry_date);`,
	},
	{
		Name: "create_index_sessions_expires_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions (expires_at);`,
	},
}

// EnsureMigrated checks if the 'vehicles' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.vehicles') IS NOT NULL"
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
