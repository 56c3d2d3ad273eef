package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{ID: "u1", Identifier: "Alice", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Identifier)

	found, err := repo.FindByIdentifier(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.ID)

	_, err = repo.FindByIdentifier(ctx, "bob")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_DuplicateIdentifier(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{ID: "u1", Identifier: "alice"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.User{ID: "u2", Identifier: " alice "})
	assert.ErrorIs(t, err, domain.ErrIdentifierAlreadyExists)
}

func TestUserRepository_ConcurrentCreateSingleWinner(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := repo.Create(ctx, &domain.User{ID: fmt.Sprint(i), Identifier: "race"}); err == nil {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, won)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{ID: "u1", Identifier: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	found, _ := repo.FindByIdentifier(ctx, "alice")
	found.PasswordHash = "mutated"

	again, _ := repo.FindByIdentifier(ctx, "alice")
	assert.Equal(t, "h", again.PasswordHash)
}

func TestProjectRepository_CRUD(t *testing.T) {
	repo := NewProjectRepository()
	ctx := context.Background()

	a := &domain.Project{Name: "a", Technologies: []string{"go"}}
	b := &domain.Project{Name: "b", Technologies: []string{"rust"}}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)

	a.Name = "renamed"
	require.NoError(t, repo.Update(ctx, a))
	got, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)

	require.NoError(t, repo.Delete(ctx, 1))
	_, err = repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 1), domain.ErrProjectNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Project{ID: 7}), domain.ErrProjectNotFound)

	// IDs are never reused.
	c := &domain.Project{Name: "c"}
	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, int64(3), c.ID)
}

func TestDenylist(t *testing.T) {
	ctx := context.Background()

	d, err := NewDenylist(time.Hour)
	require.NoError(t, err)
	defer d.Close()

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-2", 0))
	revoked, err = d.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
