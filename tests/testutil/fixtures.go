package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/infrastructure/postgres"
)

// TestDB provides a migrated database for integration tests.
type TestDB struct {
	Pool *pgxpool.Pool
	t    *testing.T
}

// NewTestDB connects to TEST_DATABASE_URL, applies the migrations and
// skips the test when no database is configured or reachable.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{DatabaseURL: dbURL, MaxConns: 4})
	if err != nil {
		t.Skipf("test database unreachable: %v", err)
	}

	if err := postgres.RunMigrations(dbURL, zerolog.Nop()); err != nil {
		pool.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	db := &TestDB{Pool: pool, t: t}
	t.Cleanup(db.Cleanup)
	db.TruncateAll(ctx)

	return db
}

// Cleanup closes the database connection.
func (db *TestDB) Cleanup() {
	db.Pool.Close()
}

// TruncateAll removes all data from tables.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `
		TRUNCATE TABLE users, installment_contracts, exclusion_rules, learned_patterns,
			classified_transactions, category_combinations
	`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// CreateUser registers a display name.
func (db *TestDB) CreateUser(ctx context.Context, id, name string) {
	db.t.Helper()
	db.exec(ctx, `INSERT INTO users (id, display_name) VALUES ($1, $2)`, id, name)
}

// AddExclusionRule adds an active rule.
func (db *TestDB) AddExclusionRule(ctx context.Context, userID, pattern string, action domain.ExclusionAction) {
	db.t.Helper()
	db.exec(ctx, `INSERT INTO exclusion_rules (user_id, pattern, action) VALUES ($1, $2, $3)`, userID, pattern, string(action))
}

// AddLearnedPattern stores a learned pattern.
func (db *TestDB) AddLearnedPattern(ctx context.Context, userID string, p domain.LearnedPattern) {
	db.t.Helper()
	db.exec(ctx, `
		INSERT INTO learned_patterns
			(user_id, establishment, value_band, confidence, observations, active, group_name, subgroup, spend_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, userID, p.Establishment, string(p.ValueBand), p.Confidence, p.Observations, p.Active, p.Group, p.Subgroup, p.SpendType)
}

// AddCombination registers a valid category triple.
func (db *TestDB) AddCombination(ctx context.Context, triple domain.CategoryTriple) {
	db.t.Helper()
	db.exec(ctx, `INSERT INTO category_combinations (group_name, subgroup, spend_type) VALUES ($1, $2, $3)`,
		triple.Group, triple.Subgroup, triple.SpendType)
}

func (db *TestDB) exec(ctx context.Context, sql string, args ...any) {
	db.t.Helper()
	if _, err := db.Pool.Exec(ctx, sql, args...); err != nil {
		db.t.Fatalf("seed failed: %v", err)
	}
}
