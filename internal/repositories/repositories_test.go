package repositories_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/quillpost/backend/internal/models"
	"github.com/quillpost/backend/internal/repositories"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Vote{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, repo repositories.UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "x"}
	if err := repo.CreateUser(user); err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return user
}

func createTestPost(t *testing.T, repo repositories.PostRepository, ownerID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{Title: title, Content: "content", Published: true, OwnerID: ownerID}
	if err := repo.CreatePost(post); err != nil {
		t.Fatalf("CreatePost(%s): %v", title, err)
	}
	return post
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresUserRepository(db)

	createTestUser(t, repo, "dup@example.com")
	err := repo.CreateUser(&models.User{Email: "dup@example.com", Password: "y"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresUserRepository(db)

	created := createTestUser(t, repo, "alice@example.com")

	user, err := repo.GetUserByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %d, got %d", created.ID, user.ID)
	}

	if _, err := repo.GetUserByEmail("nobody@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestVoteRepositoryDuplicate(t *testing.T) {
	db := newTestDB(t)
	users := repositories.NewPostgresUserRepository(db)
	posts := repositories.NewPostgresPostRepository(db)
	votes := repositories.NewPostgresVoteRepository(db)

	user := createTestUser(t, users, "voter@example.com")
	post := createTestPost(t, posts, user.ID, "first")

	if err := votes.AddVote(post.ID, user.ID); err != nil {
		t.Fatalf("AddVote: %v", err)
	}
	if err := votes.AddVote(post.ID, user.ID); !errors.Is(err, repositories.ErrDuplicateVote) {
		t.Fatalf("expected ErrDuplicateVote, got %v", err)
	}

	count, err := votes.CountVotes(post.ID)
	if err != nil {
		t.Fatalf("CountVotes: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 vote, got %d", count)
	}
}

func TestVoteRepositoryRemove(t *testing.T) {
	db := newTestDB(t)
	users := repositories.NewPostgresUserRepository(db)
	posts := repositories.NewPostgresPostRepository(db)
	votes := repositories.NewPostgresVoteRepository(db)

	user := createTestUser(t, users, "voter@example.com")
	post := createTestPost(t, posts, user.ID, "first")

	if err := votes.RemoveVote(post.ID, user.ID); !errors.Is(err, repositories.ErrVoteNotFound) {
		t.Fatalf("expected ErrVoteNotFound, got %v", err)
	}

	if err := votes.AddVote(post.ID, user.ID); err != nil {
		t.Fatalf("AddVote: %v", err)
	}
	if err := votes.RemoveVote(post.ID, user.ID); err != nil {
		t.Fatalf("RemoveVote: %v", err)
	}

	voted, err := votes.HasVoted(post.ID, user.ID)
	if err != nil {
		t.Fatalf("HasVoted: %v", err)
	}
	if voted {
		t.Fatal("vote should be gone after removal")
	}
}

func TestPostRepositoryListWithVotes(t *testing.T) {
	db := newTestDB(t)
	users := repositories.NewPostgresUserRepository(db)
	posts := repositories.NewPostgresPostRepository(db)
	votes := repositories.NewPostgresVoteRepository(db)

	alice := createTestUser(t, users, "alice@example.com")
	bob := createTestUser(t, users, "bob@example.com")
	popular := createTestPost(t, posts, alice.ID, "popular post")
	quiet := createTestPost(t, posts, bob.ID, "quiet post")

	if err := votes.AddVote(popular.ID, alice.ID); err != nil {
		t.Fatalf("AddVote: %v", err)
	}
	if err := votes.AddVote(popular.ID, bob.ID); err != nil {
		t.Fatalf("AddVote: %v", err)
	}

	rows, err := posts.ListPostsWithVotes(10, 0, "")
	if err != nil {
		t.Fatalf("ListPostsWithVotes: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	counts := map[uint]int64{}
	for _, row := range rows {
		counts[row.Post.ID] = row.Votes
	}
	if counts[popular.ID] != 2 {
		t.Fatalf("expected 2 votes on the popular post, got %d", counts[popular.ID])
	}
	if counts[quiet.ID] != 0 {
		t.Fatalf("expected 0 votes on the quiet post, got %d", counts[quiet.ID])
	}

	// Title search narrows the listing.
	rows, err = posts.ListPostsWithVotes(10, 0, "quiet")
	if err != nil {
		t.Fatalf("ListPostsWithVotes(search): %v", err)
	}
	if len(rows) != 1 || rows[0].Post.ID != quiet.ID {
		t.Fatalf("expected only the quiet post, got %+v", rows)
	}

	// Paging: limit 1, skip 1 leaves one row.
	rows, err = posts.ListPostsWithVotes(1, 1, "")
	if err != nil {
		t.Fatalf("ListPostsWithVotes(paged): %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row with limit 1 skip 1, got %d", len(rows))
	}
}

func TestPostRepositoryGetWithVotes(t *testing.T) {
	db := newTestDB(t)
	users := repositories.NewPostgresUserRepository(db)
	posts := repositories.NewPostgresPostRepository(db)
	votes := repositories.NewPostgresVoteRepository(db)

	user := createTestUser(t, users, "alice@example.com")
	post := createTestPost(t, posts, user.ID, "single")
	if err := votes.AddVote(post.ID, user.ID); err != nil {
		t.Fatalf("AddVote: %v", err)
	}

	row, err := posts.GetPostWithVotes(post.ID)
	if err != nil {
		t.Fatalf("GetPostWithVotes: %v", err)
	}
	if row.Post.ID != post.ID || row.Votes != 1 {
		t.Fatalf("expected post %d with 1 vote, got %+v", post.ID, row)
	}

	if _, err := posts.GetPostWithVotes(9999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestPostRepositoryUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	users := repositories.NewPostgresUserRepository(db)
	posts := repositories.NewPostgresPostRepository(db)

	user := createTestUser(t, users, "alice@example.com")
	post := createTestPost(t, posts, user.ID, "before")

	post.Title = "after"
	post.Published = false
	if err := posts.UpdatePost(post); err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}

	reloaded, err := posts.GetPostByID(post.ID)
	if err != nil {
		t.Fatalf("GetPostByID: %v", err)
	}
	if reloaded.Title != "after" || reloaded.Published {
		t.Fatalf("update not applied: %+v", reloaded)
	}
	if reloaded.OwnerID != user.ID {
		t.Fatalf("owner changed on update: %d", reloaded.OwnerID)
	}

	if err := posts.DeletePost(post.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if _, err := posts.GetPostByID(post.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound after delete, got %v", err)
	}
}
