// Seed populates the configured database with users and posts through the
// same services the server uses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"time"

	dbadapter "sns/internal/adapters/database"
	"sns/internal/config"
	"sns/internal/core/errs"
	postapp "sns/internal/core/post/service"
	userapp "sns/internal/core/user/service"
	postPort "sns/internal/ports/post"

	"go.uber.org/zap"
)

func main() {
	var numUsers, postsPerUser, likes int
	var replyRatio float64
	var password string
	flag.IntVar(&numUsers, "users", 50, "number of users")
	flag.IntVar(&postsPerUser, "posts", 10, "posts per user")
	flag.Float64Var(&replyRatio, "replies", 0.3, "share of posts created as replies")
	flag.IntVar(&likes, "likes", 200, "likes spread over random posts")
	flag.StringVar(&password, "password", "password", "password for every seeded user")
	flag.Parse()

	config.InitLogger()
	defer config.Logger.Sync() //nolint:errcheck

	cfg := config.Init()
	config.InitDB(cfg)
	defer func() {
		if err := config.CloseDB(config.DB); err != nil {
			config.Logger.Error("Error closing database connection", zap.Error(err))
		}
	}()
	if err := dbadapter.Migrate(config.DB); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}

	userSvc := userapp.NewUserService(dbadapter.NewUserRepositoryDatabase(config.DB), config.Logger)
	postSvc := postapp.NewPostService(dbadapter.NewPostRepositoryDatabase(config.DB), config.Logger)

	s := &seeder{
		users:  userSvc,
		posts:  postSvc,
		logger: config.Logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	start := time.Now()
	ctx := context.Background()
	userIDs := s.seedUsers(ctx, numUsers, password)
	postIDs := s.seedPosts(ctx, userIDs, postsPerUser, replyRatio)
	s.seedLikes(ctx, postIDs, likes)

	config.Logger.Info("✅ Seeding completed",
		zap.Int("users", len(userIDs)),
		zap.Int("posts", len(postIDs)),
		zap.Duration("took", time.Since(start).Truncate(time.Millisecond)))
}

type seeder struct {
	users  *userapp.UserService
	posts  *postapp.PostService
	logger *zap.Logger
	rnd    *rand.Rand
}

func (s *seeder) seedUsers(ctx context.Context, n int, password string) []string {
	s.logger.Info("🚀 Creating users...", zap.Int("count", n))

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("testuser%d", i)
		u, err := s.users.RegisterUser(ctx, username, password)
		if errors.Is(err, errs.ErrConflict) {
			// rerun against a seeded database
			s.logger.Debug("user exists", zap.String("username", username))
			continue
		}
		if err != nil {
			s.logger.Error("❌ Error creating user", zap.String("username", username), zap.Error(err))
			continue
		}
		ids = append(ids, u.ID)
		if (i+1)%50 == 0 {
			s.logger.Info("➡️ Created users so far", zap.Int("count", i+1))
		}
	}
	return ids
}

// seedPosts gives every post its own second so derived ids never collide.
// Timestamps run backwards from now.
func (s *seeder) seedPosts(ctx context.Context, userIDs []string, perUser int, replyRatio float64) []string {
	s.logger.Info("🚀 Creating posts...", zap.Int("perUser", perUser))

	total := len(userIDs) * perUser
	ts := time.Now().Unix() - int64(total)
	ids := make([]string, 0, total)

	for p := 1; p <= perUser; p++ {
		for _, uid := range userIDs {
			in := postPort.CreatePostInput{
				Content: fmt.Sprintf("Post %d by user %s", p, uid),
				Time:    &ts,
			}
			if len(ids) > 0 && s.rnd.Float64() < replyRatio {
				parent := ids[s.rnd.Intn(len(ids))]
				in.RelatedID = &parent
			}

			dto, err := s.posts.CreatePost(ctx, uid, in)
			ts++
			if err != nil {
				s.logger.Error("❌ Error creating post", zap.String("userID", uid), zap.Error(err))
				continue
			}
			ids = append(ids, dto.ID)
			if len(ids)%100 == 0 {
				s.logger.Info("➡️ Created posts so far", zap.Int("count", len(ids)))
			}
		}
	}
	return ids
}

func (s *seeder) seedLikes(ctx context.Context, postIDs []string, n int) {
	if len(postIDs) == 0 {
		return
	}
	for i := 0; i < n; i++ {
		id := postIDs[s.rnd.Intn(len(postIDs))]
		if _, err := s.posts.LikePost(ctx, id); err != nil {
			s.logger.Error("❌ Error liking post", zap.String("postID", id), zap.Error(err))
		}
	}
	s.logger.Info("✅ Likes applied", zap.Int("count", n))
}
