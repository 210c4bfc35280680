package database

import (
	"context"
	"errors"

	"sns/internal/core/post"
	postPort "sns/internal/ports/post"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase پیاده‌سازی PostRepository برای دیتابیس
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase سازنده PostRepositoryDatabase
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

var newestFirst = clause.OrderByColumn{Column: clause.Column{Name: "time"}, Desc: true}

// Create inserts the post and loads its account. ID and Time are filled in
// by the entity's BeforeCreate hook when unset.
func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return translateWriteError(err)
		}
		return tx.Where("id = ?", p.AccountID).First(&p.Account).Error
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Preload("Account").Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, postPort.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&post.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update changes content and related post only; id, account and time stay.
func (repo *PostRepositoryDatabase) Update(ctx context.Context, id, content string, relatedID *string) error {
	res := repo.db.WithContext(ctx).Model(&post.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    content,
			"related_id": relatedID,
		})
	if res.Error != nil {
		return translateWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero for an update that changes nothing
		ok, err := repo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return postPort.ErrPostNotFound
		}
	}
	return nil
}

// Delete removes the post. Replies go with it through ON DELETE CASCADE.
func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&post.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return postPort.ErrPostNotFound
	}
	return nil
}

// IncrementLiked adds one like with a single UPDATE and reads the new count in
// the same transaction, so concurrent likes are never lost.
func (repo *PostRepositoryDatabase) IncrementLiked(ctx context.Context, id string) (int64, error) {
	var p post.Post
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&post.Post{}).Where("id = ?", id).UpdateColumn("liked", gorm.Expr("liked + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return postPort.ErrPostNotFound
		}
		return tx.Select("liked").Where("id = ?", id).First(&p).Error
	})
	if err != nil {
		return 0, err
	}
	return p.Liked, nil
}

func (repo *PostRepositoryDatabase) FindLatest(ctx context.Context, limit int) ([]*post.Post, error) {
	posts := []*post.Post{}
	if err := repo.db.WithContext(ctx).
		Preload("Account").
		Order(newestFirst).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) FindReplies(ctx context.Context, id string) ([]*post.Post, error) {
	posts := []*post.Post{}
	if err := repo.db.WithContext(ctx).
		Preload("Account").
		Where("related_id = ?", id).
		Order(newestFirst).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func translateWriteError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return postPort.ErrDuplicateID
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return postPort.ErrMissingReference
	}
	return err
}
