package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/upsight-uz/portal-api/config"
)

// EnsureDatabase connects to the maintenance database over the raw
// driver and creates the application database when it is missing.
// AutoMigrate needs the database to exist before GORM can connect.
func EnsureDatabase() error {
	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=postgres port=%s sslmode=%s",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", getEnv.DB_NAME).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	log.Printf("Database %q does not exist, creating it", getEnv.DB_NAME)
	// CREATE DATABASE cannot be parameterized; the name comes from our
	// own environment, not from request input.
	_, err = db.Exec(fmt.Sprintf("CREATE DATABASE %q", getEnv.DB_NAME))
	return err
}

// EnsureIndexes creates the indexes AutoMigrate cannot express. The
// trigram indexes back the ILIKE student search.
func EnsureIndexes() error {
	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	statements := []string{
		"CREATE EXTENSION IF NOT EXISTS pg_trgm",
		"CREATE INDEX IF NOT EXISTS idx_students_name_ko_trgm ON students USING gin (name_ko gin_trgm_ops)",
		"CREATE INDEX IF NOT EXISTS idx_students_name_uz_trgm ON students USING gin (name_uz gin_trgm_ops)",
		"CREATE INDEX IF NOT EXISTS idx_students_student_id_trgm ON students USING gin (student_id gin_trgm_ops)",
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Skipping index statement (%v): %s", err, stmt)
		}
	}
	return nil
}
