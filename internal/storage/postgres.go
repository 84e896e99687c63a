package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/xaenox/scamshield/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	storage := &PostgresStorage{db: db}

	// Initialize database schema
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	return nil
}

func (s *PostgresStorage) GetEntitlement(ctx context.Context, userID int64) (*models.Entitlement, error) {
	query := `
		SELECT user_id, is_premium, premium_until
		FROM entitlements
		WHERE user_id = $1`

	e := &models.Entitlement{}
	var until sql.NullTime
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&e.UserID, &e.Premium, &until)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying entitlement: %w", err)
	}
	if until.Valid {
		t := until.Time.UTC()
		e.PremiumUntil = &t
	}
	return e, nil
}

func (s *PostgresStorage) SaveEntitlement(ctx context.Context, e *models.Entitlement) error {
	query := `
		INSERT INTO entitlements (user_id, is_premium, premium_until)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET is_premium = EXCLUDED.is_premium, premium_until = EXCLUDED.premium_until`

	var until sql.NullTime
	if e.PremiumUntil != nil {
		until = sql.NullTime{Time: e.PremiumUntil.UTC(), Valid: true}
	}
	if _, err := s.db.ExecContext(ctx, query, e.UserID, e.Premium, until); err != nil {
		return fmt.Errorf("error saving entitlement: %w", err)
	}
	return nil
}

func (s *PostgresStorage) GetUsage(ctx context.Context, userID int64) (*models.Usage, error) {
	query := `
		SELECT user_id, day, count
		FROM usage_counts
		WHERE user_id = $1`

	u := &models.Usage{}
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&u.UserID, &u.Day, &u.Count)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying usage: %w", err)
	}
	return u, nil
}

func (s *PostgresStorage) SaveUsage(ctx context.Context, u *models.Usage) error {
	query := `
		INSERT INTO usage_counts (user_id, day, count)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET day = EXCLUDED.day, count = EXCLUDED.count`

	if _, err := s.db.ExecContext(ctx, query, u.UserID, u.Day, u.Count); err != nil {
		return fmt.Errorf("error saving usage: %w", err)
	}
	return nil
}

func (s *PostgresStorage) DeleteUsageBefore(ctx context.Context, day string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM usage_counts WHERE day < $1`, day); err != nil {
		return fmt.Errorf("error purging usage: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
