package repositories

import (
	"github.com/quillpost/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostWithVotes(id uint) (*models.PostWithVotes, error)
	ListPostsWithVotes(limit, skip int, search string) ([]models.PostWithVotes, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost persists a new post and reloads it with its owner attached.
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return err
	}
	return r.db.Preload("Owner").First(post, post.ID).Error
}

// GetPostByID retrieves a post by ID with its owner
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Owner").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) withVoteCounts() *gorm.DB {
	return r.db.Model(&models.Post{}).
		Select("posts.*, COUNT(votes.post_id) AS votes").
		Joins("LEFT JOIN votes ON votes.post_id = posts.id").
		Group("posts.id")
}

// GetPostWithVotes retrieves a post by ID together with its vote count.
func (r *PostgresPostRepository) GetPostWithVotes(id uint) (*models.PostWithVotes, error) {
	var row models.PostWithVotes
	if err := r.withVoteCounts().Where("posts.id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListPostsWithVotes retrieves posts with their vote counts, filtered by a
// title substring and paged with limit/skip.
func (r *PostgresPostRepository) ListPostsWithVotes(limit, skip int, search string) ([]models.PostWithVotes, error) {
	rows := []models.PostWithVotes{}
	err := r.withVoteCounts().
		Where("posts.title LIKE ?", "%"+search+"%").
		Limit(limit).
		Offset(skip).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdatePost replaces the mutable fields of an existing post.
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"title":     post.Title,
		"content":   post.Content,
		"published": post.Published,
	}).Error
}

// DeletePost deletes a post by ID
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}
