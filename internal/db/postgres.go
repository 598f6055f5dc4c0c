package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

type PostgresDB struct {
	db *sql.DB
}

func NewPostgresDB(url string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.New(
			errors.RefDBConnection,
			"Failed to open database connection",
			"Could not initialize database connection",
			err,
			errors.LevelError,
		)
	}

	// * Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	// * Verify connection
	if err := db.Ping(); err != nil {
		return nil, errors.New(
			errors.RefDBConnection,
			"Failed to verify database connection",
			"Database ping failed",
			err,
			errors.LevelError,
		)
	}

	logger.Info("connected to database successfully 🎉")
	return &PostgresDB{db: db}, nil
}

func (p *PostgresDB) Migrate(sourceURL string) error {
	driver, err := postgres.WithInstance(p.db, &postgres.Config{})
	if err != nil {
		return errors.New(
			errors.RefDBMigration,
			"Failed to create migration driver",
			"Could not initialize migration driver instance",
			err,
			errors.LevelError,
		)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return errors.New(
			errors.RefDBMigration,
			"Failed to create migration instance",
			fmt.Sprintf("Could not create migration instance from %s", sourceURL),
			err,
			errors.LevelError,
		)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.New(
			errors.RefDBMigration,
			"Failed to run migrations",
			"Migration up operation failed",
			err,
			errors.LevelError,
		)
	}

	return nil
}

func (p *PostgresDB) Close() error {
	if err := p.db.Close(); err != nil {
		return errors.New(
			errors.RefDBConnection,
			"Failed to close database connection",
			"Error while closing database connection",
			err,
			errors.LevelWarning,
		)
	}
	return nil
}

// * GetPreference returns nil without error when nothing is stored
func (p *PostgresDB) GetPreference(ctx context.Context, visitorID, key string) (*models.Preference, error) {
	query := `
		SELECT visitor_id, key, value, updated_at
		FROM preferences
		WHERE visitor_id = $1 AND key = $2
	`

	var pref models.Preference
	err := p.db.QueryRowContext(ctx, query, visitorID, key).Scan(
		&pref.VisitorID, &pref.Key, &pref.Value, &pref.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New(
			errors.RefDBPreference,
			"Failed to fetch preference",
			fmt.Sprintf("Could not fetch preference '%s' for visitor '%s'", key, visitorID),
			err,
			errors.LevelWarning,
		)
	}

	return &pref, nil
}

func (p *PostgresDB) SetPreference(ctx context.Context, pref *models.Preference) error {
	query := `
		INSERT INTO preferences (visitor_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT(visitor_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`

	err := p.db.QueryRowContext(ctx, query, pref.VisitorID, pref.Key, pref.Value).Scan(&pref.UpdatedAt)
	if err != nil {
		return errors.New(
			errors.RefDBPreference,
			"Failed to save preference",
			fmt.Sprintf("Could not save preference '%s' for visitor '%s'", pref.Key, pref.VisitorID),
			err,
			errors.LevelWarning,
		)
	}

	return nil
}

func (p *PostgresDB) DeletePreferences(ctx context.Context, visitorID string) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM preferences WHERE visitor_id = $1`, visitorID)
	if err != nil {
		return 0, errors.New(
			errors.RefDBPreference,
			"Failed to delete preferences",
			fmt.Sprintf("Could not delete preferences for visitor '%s'", visitorID),
			err,
			errors.LevelWarning,
		)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
