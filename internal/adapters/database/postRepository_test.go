package database

import (
	"context"
	"errors"
	"sync"
	"testing"

	"sns/internal/core/post"
	"sns/internal/core/user"
	postPort "sns/internal/ports/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type postFixture struct {
	db    *gorm.DB
	repo  *PostRepositoryDatabase
	alice *user.User
	bob   *user.User
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	db := newTestDB(t)
	users := NewUserRepositoryDatabase(db)
	f := &postFixture{db: db, repo: NewPostRepositoryDatabase(db)}

	var err error
	f.alice, err = users.Create(context.Background(), &user.User{ID: uuid.Must(uuid.NewV4()), Username: "alice", Password: "x"})
	if err != nil {
		t.Fatal(err)
	}
	f.bob, err = users.Create(context.Background(), &user.User{ID: uuid.Must(uuid.NewV4()), Username: "bob", Password: "x"})
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *postFixture) create(t *testing.T, u *user.User, ts int64, related *string) *post.Post {
	t.Helper()
	p, err := f.repo.Create(context.Background(), &post.Post{AccountID: u.ID, Time: ts, Content: "content", RelatedID: related})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return p
}

func TestPostCreateAndFind(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	p := f.create(t, f.alice, 1700000000, nil)
	if p.ID != post.DeriveID(f.alice.ID.String(), 1700000000) {
		t.Fatalf("id = %s, not derived from account and time", p.ID)
	}
	if p.Account.Username != "alice" {
		t.Fatalf("account not loaded: %+v", p.Account)
	}

	got, err := f.repo.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != p.ID || got.AccountID != p.AccountID || got.Time != p.Time ||
		got.Content != p.Content || got.Liked != 0 || got.RelatedID != nil || got.Account.Username != "alice" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if _, err := f.repo.FindByID(ctx, "missing"); !errors.Is(err, postPort.ErrPostNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestPostCreateSameSecondCollides(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	f.create(t, f.alice, 1700000000, nil)
	_, err := f.repo.Create(ctx, &post.Post{AccountID: f.alice.ID, Time: 1700000000, Content: "again"})
	if !errors.Is(err, postPort.ErrDuplicateID) {
		t.Fatalf("err = %v, want duplicate id", err)
	}
	f.create(t, f.bob, 1700000000, nil)
}

func TestPostCreateMissingReference(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	_, err := f.repo.Create(ctx, &post.Post{AccountID: uuid.Must(uuid.NewV4()), Time: 1, Content: "orphan"})
	if !errors.Is(err, postPort.ErrMissingReference) {
		t.Fatalf("err = %v, want missing reference for account", err)
	}

	missing := "0000000000000000000000000000000000000000000000000000000000000000"
	_, err = f.repo.Create(ctx, &post.Post{AccountID: f.alice.ID, Time: 2, Content: "reply", RelatedID: &missing})
	if !errors.Is(err, postPort.ErrMissingReference) {
		t.Fatalf("err = %v, want missing reference for related", err)
	}
}

func TestPostUpdate(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	parent := f.create(t, f.bob, 1, nil)
	p := f.create(t, f.alice, 2, nil)

	if err := f.repo.Update(ctx, p.ID, "edited", &parent.ID); err != nil {
		t.Fatal(err)
	}
	got, err := f.repo.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Content != "edited" || got.RelatedID == nil || *got.RelatedID != parent.ID || got.Time != 2 {
		t.Fatalf("unexpected post after update: %+v", got)
	}

	// same values again must not be reported as missing
	if err := f.repo.Update(ctx, p.ID, "edited", &parent.ID); err != nil {
		t.Fatal(err)
	}

	if err := f.repo.Update(ctx, p.ID, "edited", nil); err != nil {
		t.Fatal(err)
	}
	got, _ = f.repo.FindByID(ctx, p.ID)
	if got.RelatedID != nil {
		t.Fatal("related not cleared")
	}

	if err := f.repo.Update(ctx, "missing", "x", nil); !errors.Is(err, postPort.ErrPostNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestPostDeleteCascadesToReplies(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	root := f.create(t, f.alice, 1, nil)
	reply := f.create(t, f.bob, 2, &root.ID)
	nested := f.create(t, f.alice, 3, &reply.ID)
	other := f.create(t, f.bob, 4, nil)

	if err := f.repo.Delete(ctx, root.ID); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{root.ID, reply.ID, nested.ID} {
		if ok, _ := f.repo.Exists(ctx, id); ok {
			t.Fatalf("post %s survived the cascade", id)
		}
	}
	if ok, _ := f.repo.Exists(ctx, other.ID); !ok {
		t.Fatal("unrelated post was deleted")
	}

	if err := f.repo.Delete(ctx, root.ID); !errors.Is(err, postPort.ErrPostNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestDeletingUserCascadesToPosts(t *testing.T) {
	f := newPostFixture(t)
	p := f.create(t, f.alice, 1, nil)

	if err := f.db.Delete(&user.User{}, "id = ?", f.alice.ID).Error; err != nil {
		t.Fatal(err)
	}
	if ok, _ := f.repo.Exists(context.Background(), p.ID); ok {
		t.Fatal("post of deleted user survived")
	}
}

func TestIncrementLikedConcurrently(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := f.create(t, f.alice, 1, nil)

	const k = 40
	var wg sync.WaitGroup
	errs := make(chan error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.repo.IncrementLiked(ctx, p.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	got, err := f.repo.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Liked != k {
		t.Fatalf("liked = %d, want %d", got.Liked, k)
	}

	liked, err := f.repo.IncrementLiked(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if liked != k+1 {
		t.Fatalf("returned %d, want %d", liked, k+1)
	}

	if _, err := f.repo.IncrementLiked(ctx, "missing"); !errors.Is(err, postPort.ErrPostNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestFindLatestAndReplies(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	oldest := f.create(t, f.alice, 100, nil)
	middle := f.create(t, f.bob, 200, &oldest.ID)
	newest := f.create(t, f.alice, 300, &oldest.ID)

	posts, err := f.repo.FindLatest(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 || posts[0].ID != newest.ID || posts[1].ID != middle.ID {
		t.Fatalf("unexpected timeline order")
	}
	if posts[1].Account.Username != "bob" {
		t.Fatalf("account not preloaded: %+v", posts[1].Account)
	}

	all, err := f.repo.FindLatest(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d posts, want 3", len(all))
	}

	replies, err := f.repo.FindReplies(ctx, oldest.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(replies) != 2 || replies[0].ID != newest.ID {
		t.Fatalf("unexpected replies")
	}
}
