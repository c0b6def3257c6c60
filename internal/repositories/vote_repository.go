package repositories

import (
	"errors"

	"github.com/quillpost/backend/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateVote reports that the user already voted on the post.
	ErrDuplicateVote = errors.New("vote already exists")
	// ErrVoteNotFound reports that no vote exists for the pair.
	ErrVoteNotFound = errors.New("vote not found")
)

// VoteRepository defines the interface for vote data operations
type VoteRepository interface {
	HasVoted(postID, userID uint) (bool, error)
	AddVote(postID, userID uint) error
	RemoveVote(postID, userID uint) error
	CountVotes(postID uint) (int64, error)
}

// PostgresVoteRepository implements VoteRepository for PostgreSQL
type PostgresVoteRepository struct {
	db *gorm.DB
}

// NewPostgresVoteRepository creates a new PostgresVoteRepository
func NewPostgresVoteRepository(db *gorm.DB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

// HasVoted checks whether the user has voted on the post
func (r *PostgresVoteRepository) HasVoted(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Vote{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddVote inserts a vote for the pair. The composite primary key is the
// arbiter under concurrency: a second insert for the same pair fails with a
// duplicate-key violation, reported as ErrDuplicateVote.
func (r *PostgresVoteRepository) AddVote(postID, userID uint) error {
	err := r.db.Create(&models.Vote{UserID: userID, PostID: postID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateVote
	}
	return err
}

// RemoveVote deletes the vote for the pair, reporting ErrVoteNotFound when no
// row existed.
func (r *PostgresVoteRepository) RemoveVote(postID, userID uint) error {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Vote{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVoteNotFound
	}
	return nil
}

// CountVotes returns the number of votes on the post
func (r *PostgresVoteRepository) CountVotes(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Vote{}).Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
