package post

import (
	"context"
	"errors"

	"sns/internal/core/post"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrDuplicateID  = errors.New("post id already exists")
	// ErrMissingReference means the account or the related post of a write
	// does not exist.
	ErrMissingReference = errors.New("referenced row does not exist")
)

// PostRepository پورت برای ذخیره‌سازی و بازیابی پست‌ها
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id, content string, relatedID *string) error
	Delete(ctx context.Context, id string) error
	IncrementLiked(ctx context.Context, id string) (int64, error)
	FindLatest(ctx context.Context, limit int) ([]*post.Post, error)
	FindReplies(ctx context.Context, id string) ([]*post.Post, error)
}

type CreatePostInput struct {
	Content   string
	RelatedID *string
	Time      *int64 // nil means now
}

type EditPostInput struct {
	Content   string
	RelatedID *string
}

// PostDTO is the wire shape of a post.
type PostDTO struct {
	ID      string  `json:"ID"`
	Account string  `json:"ACCOUNT"`
	Time    int64   `json:"TIME"`
	Content string  `json:"CONTENT"`
	Liked   int64   `json:"LIKED"`
	Related *string `json:"RELATED"`
}

func ToDTO(p *post.Post) *PostDTO {
	return &PostDTO{
		ID:      p.ID,
		Account: p.Account.Username,
		Time:    p.Time,
		Content: p.Content,
		Liked:   p.Liked,
		Related: p.RelatedID,
	}
}

func ToDTOs(posts []*post.Post) []*PostDTO {
	dtos := make([]*PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, ToDTO(p))
	}
	return dtos
}
