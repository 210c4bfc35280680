package postapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sns/internal/core/errs"
	postEntity "sns/internal/core/post"
	postPort "sns/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type PostService struct {
	PostRepository postPort.PostRepository
	Logger         *zap.Logger
	Now            func() time.Time
}

func NewPostService(postRepo postPort.PostRepository, logger *zap.Logger) *PostService {
	return &PostService{
		PostRepository: postRepo,
		Logger:         logger,
		Now:            time.Now,
	}
}

// CreatePost ایجاد یک پست جدید
func (s *PostService) CreatePost(ctx context.Context, accountID string, in postPort.CreatePostInput) (*postPort.PostDTO, error) {
	content, err := postEntity.NormalizeContent(in.Content)
	if err != nil {
		return nil, err
	}

	uid, err := uuid.FromString(accountID)
	if err != nil {
		return nil, errs.NotFound("Account not found")
	}

	related, err := s.resolveRelated(ctx, in.RelatedID)
	if err != nil {
		return nil, err
	}

	ts := s.Now().Unix()
	if in.Time != nil {
		ts = *in.Time
	}

	p := &postEntity.Post{
		AccountID: uid,
		Time:      ts,
		Content:   content,
		RelatedID: related,
	}

	created, err := s.PostRepository.Create(ctx, p)
	switch {
	case errors.Is(err, postPort.ErrDuplicateID):
		s.Logger.Warn("post id collision", zap.String("accountID", accountID), zap.Int64("time", ts))
		return nil, errs.Conflict("A post with this ID already exists")
	case errors.Is(err, postPort.ErrMissingReference):
		if related != nil {
			return nil, errs.NotFound("Related post not found")
		}
		return nil, errs.NotFound("Account not found")
	case err != nil:
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.Logger.Info("post created", zap.String("postID", created.ID), zap.String("accountID", accountID))
	return postPort.ToDTO(created), nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*postPort.PostDTO, error) {
	p, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTO(p), nil
}

// EditPost updates content and related post. Ownership is checked before the
// new content is validated.
func (s *PostService) EditPost(ctx context.Context, id, requesterID string, in postPort.EditPostInput) (*postPort.PostDTO, error) {
	p, err := s.ownedPost(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	content, err := postEntity.NormalizeContent(in.Content)
	if err != nil {
		return nil, err
	}
	related, err := s.resolveRelated(ctx, in.RelatedID)
	if err != nil {
		return nil, err
	}

	err = s.PostRepository.Update(ctx, id, content, related)
	switch {
	case errors.Is(err, postPort.ErrPostNotFound):
		return nil, errs.NotFound("Post not found")
	case errors.Is(err, postPort.ErrMissingReference):
		return nil, errs.NotFound("Related post not found")
	case err != nil:
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}

	p.Content = content
	p.RelatedID = related
	return postPort.ToDTO(p), nil
}

// DeletePost removes the post; replies to it are removed by the storage cascade.
func (s *PostService) DeletePost(ctx context.Context, id, requesterID string) error {
	if _, err := s.ownedPost(ctx, id, requesterID); err != nil {
		return err
	}

	err := s.PostRepository.Delete(ctx, id)
	if errors.Is(err, postPort.ErrPostNotFound) {
		return errs.NotFound("Post not found")
	}
	if err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}

	s.Logger.Info("post deleted", zap.String("postID", id), zap.String("accountID", requesterID))
	return nil
}

func (s *PostService) LikePost(ctx context.Context, id string) (int64, error) {
	liked, err := s.PostRepository.IncrementLiked(ctx, id)
	if errors.Is(err, postPort.ErrPostNotFound) {
		return 0, errs.NotFound("Post not found")
	}
	if err != nil {
		return 0, fmt.Errorf("like post %s: %w", id, err)
	}
	return liked, nil
}

// ListTimeline returns the n most recent posts of all accounts.
func (s *PostService) ListTimeline(ctx context.Context, n int) ([]*postPort.PostDTO, error) {
	if n <= 0 {
		return nil, errs.Validation("Invalid number")
	}
	posts, err := s.PostRepository.FindLatest(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	return postPort.ToDTOs(posts), nil
}

// ListReplies returns the direct replies to a post, newest first.
func (s *PostService) ListReplies(ctx context.Context, id string) ([]*postPort.PostDTO, error) {
	ok, err := s.PostRepository.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check post %s: %w", id, err)
	}
	if !ok {
		return nil, errs.NotFound("Post not found")
	}
	posts, err := s.PostRepository.FindReplies(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list replies of %s: %w", id, err)
	}
	return postPort.ToDTOs(posts), nil
}

func (s *PostService) findPost(ctx context.Context, id string) (*postEntity.Post, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if errors.Is(err, postPort.ErrPostNotFound) {
		return nil, errs.NotFound("Post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find post %s: %w", id, err)
	}
	return p, nil
}

// CheckOwner fails with NotFound or Permission unless requesterID owns the post.
func (s *PostService) CheckOwner(ctx context.Context, id, requesterID string) error {
	_, err := s.ownedPost(ctx, id, requesterID)
	return err
}

func (s *PostService) ownedPost(ctx context.Context, id, requesterID string) (*postEntity.Post, error) {
	p, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AccountID.String() != requesterID {
		return nil, errs.Permission("Permission denied")
	}
	return p, nil
}

// resolveRelated treats an empty id like an absent one.
func (s *PostService) resolveRelated(ctx context.Context, relatedID *string) (*string, error) {
	if relatedID == nil || *relatedID == "" {
		return nil, nil
	}
	ok, err := s.PostRepository.Exists(ctx, *relatedID)
	if err != nil {
		return nil, fmt.Errorf("check related post %s: %w", *relatedID, err)
	}
	if !ok {
		return nil, errs.NotFound("Related post not found")
	}
	id := *relatedID
	return &id, nil
}
