package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"user-service/internal/domain"
	"user-service/internal/repository"
)

func openTestRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func newUser(id, email string) *domain.User {
	return &domain.User{
		ID:           id,
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
		Age:          30,
		Role:         domain.RoleUser,
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := context.Background()

	user := newUser("id-1", "a@x.com")
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByID(ctx, "id-1")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", got.Email)
	require.Equal(t, "Test User", got.Name)
	require.Equal(t, 30, got.Age)
	require.Equal(t, domain.RoleUser, got.Role)

	got, err = repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "id-1", got.ID)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("id-1", "a@x.com")))
	err := repo.Create(ctx, newUser("id-2", "a@x.com"))
	require.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUserRepository_Update(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("id-1", "a@x.com")))
	require.NoError(t, repo.Create(ctx, newUser("id-2", "b@x.com")))

	updated := newUser("id-1", "c@x.com")
	updated.Name = "Renamed"
	updated.Role = domain.RoleAdmin
	require.NoError(t, repo.Update(ctx, updated))

	got, err := repo.GetByID(ctx, "id-1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.Equal(t, "c@x.com", got.Email)
	require.Equal(t, domain.RoleAdmin, got.Role)

	// rolled back on conflict, record untouched
	require.ErrorIs(t, repo.Update(ctx, newUser("id-1", "b@x.com")), repository.ErrDuplicateEmail)
	got, err = repo.GetByID(ctx, "id-1")
	require.NoError(t, err)
	require.Equal(t, "c@x.com", got.Email)

	require.ErrorIs(t, repo.Update(ctx, newUser("missing", "z@x.com")), repository.ErrNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("id-1", "a@x.com")))
	require.NoError(t, repo.Delete(ctx, "id-1"))

	_, err := repo.GetByID(ctx, "id-1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "id-1"), repository.ErrNotFound)
}

func TestUserRepository_List(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	require.NoError(t, repo.Create(ctx, newUser("id-1", "a@x.com")))
	require.NoError(t, repo.Create(ctx, newUser("id-2", "b@x.com")))

	users, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestUserRepository_ConcurrentDuplicateCreate(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, newUser(fmt.Sprintf("id-%d", i), "same@x.com"))
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, repository.ErrDuplicateEmail)
		}
	}
	require.Equal(t, 1, succeeded)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}
