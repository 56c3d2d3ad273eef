package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// testPool connects to TEST_DATABASE_URL, migrates and truncates. Tests are
// skipped when the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := Connect(ctx, Config{URL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, NewMigrator(pool, zerolog.Nop()).Up(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE users, projects RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func TestUserRepository(t *testing.T) {
	pool := testPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{
		ID:           "u1",
		Identifier:   "Alice",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Identifier)

	found, err := repo.FindByIdentifier(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.ID)

	_, err = repo.Create(ctx, &domain.User{ID: "u2", Identifier: "alice", PasswordHash: "x", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrIdentifierAlreadyExists)

	_, err = repo.FindByIdentifier(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestProjectRepository(t *testing.T) {
	pool := testPool(t)
	repo := NewProjectRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC()

	p := &domain.Project{
		Name:         "portfolio",
		Description:  "site",
		Technologies: []string{"go", "postgres"},
		Type:         domain.ProjectTypeWeb,
		CreatedBy:    "u1",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(ctx, p))
	assert.Equal(t, int64(1), p.ID)

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "postgres"}, got.Technologies)

	p.Name = "renamed"
	require.NoError(t, repo.Update(ctx, p))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "renamed", list[0].Name)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), domain.ErrProjectNotFound)
}
