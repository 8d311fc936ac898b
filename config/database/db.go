package database

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"artifactvault/pkg/logger"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS artifacts (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	doc        JSONB NOT NULL,
	like_count BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS artifact_likes (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	artifact_id UUID NOT NULL,
	user_id     TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS artifact_likes_artifact_user_idx
	ON artifact_likes (artifact_id, user_id);
`

func Connect() *sql.DB {
	dbUser := strings.TrimSpace(os.Getenv("DB_USER"))
	dbPass := strings.TrimSpace(os.Getenv("DB_PASS"))
	dbHost := strings.TrimSpace(os.Getenv("DB_HOST"))
	dbPort := strings.TrimSpace(os.Getenv("DB_PORT"))
	dbName := strings.TrimSpace(os.Getenv("DB_NAME"))

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=require", dbUser, dbPass, dbHost, dbPort, dbName)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		logger.Sugar.Fatalf("Failed to open database connection: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			logger.Sugar.Info("Successfully connected to the database")
			ensureSchema(db)
			return db
		}
		logger.Sugar.Infof("Database connection failed, retrying in 2s... (%v)", err)
		time.Sleep(2 * time.Second)
	}
	logger.Sugar.Fatalf("Could not connect to database after retries: %v", err)
	return nil
}

// ensureSchema creates the tables and the unique like index on startup. The
// unique (artifact_id, user_id) index is what keeps a user's like a single
// row even under concurrent toggles.
func ensureSchema(db *sql.DB) {
	if _, err := db.Exec(schema); err != nil {
		logger.Sugar.Fatalf("Failed to ensure database schema: %v", err)
	}
}
