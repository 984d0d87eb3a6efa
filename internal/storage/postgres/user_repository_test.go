package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/cimillas/gatherhub/internal/domain"
	"github.com/cimillas/gatherhub/internal/testutil"
	"github.com/google/uuid"
)

func TestUserRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)

	repo := NewUserRepository(pool)

	newUser := func(email string) domain.User {
		return domain.User{
			ID:        uuid.NewString(),
			Name:      "Ana",
			Email:     email,
			PassHash:  []byte("bcrypt-hash"),
			CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		}
	}

	t.Run("create and fetch by email", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		user := newUser("ana@example.com")
		if err := repo.CreateUser(ctx, user); err != nil {
			t.Fatalf("create user: %v", err)
		}

		got, err := repo.UserByEmail(ctx, "ana@example.com")
		if err != nil {
			t.Fatalf("user by email: %v", err)
		}
		if got.ID != user.ID || got.Name != user.Name || string(got.PassHash) != string(user.PassHash) {
			t.Fatalf("unexpected user: %+v", got)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		if err := repo.CreateUser(ctx, newUser("ana@example.com")); err != nil {
			t.Fatalf("create user: %v", err)
		}
		if err := repo.CreateUser(ctx, newUser("ana@example.com")); err != domain.ErrEmailTaken {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		if _, err := repo.UserByEmail(ctx, "nobody@example.com"); err != domain.ErrUserNotFound {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}
