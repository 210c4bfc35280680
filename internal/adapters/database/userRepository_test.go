package database

import (
	"context"
	"errors"
	"testing"

	"sns/internal/core/user"
	userPort "sns/internal/ports/user"

	"github.com/gofrs/uuid"
)

func TestUserRepository(t *testing.T) {
	repo := NewUserRepositoryDatabase(newTestDB(t))
	ctx := context.Background()

	alice := &user.User{ID: uuid.Must(uuid.NewV4()), Username: "alice", Password: "hash"}
	if _, err := repo.Create(ctx, alice); err != nil {
		t.Fatal(err)
	}

	got, err := repo.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != alice.ID {
		t.Fatalf("id = %s, want %s", got.ID, alice.ID)
	}

	byID, err := repo.FindByID(ctx, alice.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if byID.Username != "alice" {
		t.Fatalf("username = %s", byID.Username)
	}

	if _, err := repo.FindByUsername(ctx, "ALICE"); !errors.Is(err, userPort.ErrUserNotFound) {
		t.Fatalf("err = %v, want not found for different case", err)
	}
	if _, err := repo.FindByID(ctx, uuid.Must(uuid.NewV4()).String()); !errors.Is(err, userPort.ErrUserNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}

	dup := &user.User{ID: uuid.Must(uuid.NewV4()), Username: "alice", Password: "hash"}
	if _, err := repo.Create(ctx, dup); !errors.Is(err, userPort.ErrDuplicateUsername) {
		t.Fatalf("err = %v, want duplicate username", err)
	}
}
