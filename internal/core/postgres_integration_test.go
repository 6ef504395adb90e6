package core_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"erp-admin/internal/core"
	"erp-admin/internal/db"
	"erp-admin/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database; the tables below are truncated.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if _, err := db.RunMigrations(ctx, pool, migrations.FS); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE audit_log, user_meta, options, companies, users RESTART IDENTITY CASCADE;

		INSERT INTO users (username, email, password_hash, role) VALUES
		('alice', 'alice@example.com', 'x', 'admin'),
		('bob', 'bob@example.com', 'x', 'member');
	`)
	if err != nil {
		pool.Close()
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func TestPostgresStore_Integration(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	store := core.NewPostgresStore(pool)

	_, ok, err := store.GetOption(ctx, core.OptionHiddenMainMenu)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetOption(ctx, core.OptionHiddenMainMenu, `["media"]`))
	require.NoError(t, store.SetOption(ctx, core.OptionHiddenMainMenu, `[]`))
	v, ok, err := store.GetOption(ctx, core.OptionHiddenMainMenu)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	require.NoError(t, store.SetUserMeta(ctx, 1, core.MetaActiveModule, "crm"))
	require.NoError(t, store.SetUserMeta(ctx, 1, core.MetaActiveModule, "hrm"))
	v, ok, err = store.GetUserMeta(ctx, 1, core.MetaActiveModule)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hrm", v)

	_, ok, err = store.GetUserMeta(ctx, 2, core.MetaActiveModule)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompanyService_Integration(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	svc := core.NewCompanyService(pool)

	created, err := svc.Create(ctx, core.CompanyInput{Name: "  Acme  ", BaseCurrency: "eur"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.Name)
	assert.Equal(t, "EUR", created.BaseCurrency)

	_, err = svc.Create(ctx, core.CompanyInput{Name: ""})
	assert.Error(t, err)

	updated, err := svc.Update(ctx, created.ID, core.CompanyInput{Name: "Acme Ltd", Email: "hq@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", updated.Name)
	assert.Equal(t, "USD", updated.BaseCurrency)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.GetByID(ctx, 9999)
	assert.True(t, errors.Is(err, core.ErrNotFound))
	_, err = svc.Update(ctx, 9999, core.CompanyInput{Name: "Nope"})
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestAuditLog_Integration(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	audit := core.NewAuditLog(pool)

	require.NoError(t, audit.Record(ctx, admin, core.AuditModuleSwitched, "crm"))
	require.NoError(t, audit.Record(ctx, admin, core.AuditCompanySwitched, "1"))

	entries, err := audit.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, core.AuditCompanySwitched, entries[0].Action)
	assert.Equal(t, "alice", entries[0].Username)
}

func TestUserService_Integration(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	users := core.NewUserService(pool)

	u, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, core.RoleAdmin, u.Actor().Role)

	created, err := users.Create(ctx, "carol", "carol@example.com", "hash", core.RoleMember)
	require.NoError(t, err)
	got, err := users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Username)

	_, err = users.GetByUsername(ctx, "nobody")
	assert.True(t, errors.Is(err, core.ErrNotFound))
}
