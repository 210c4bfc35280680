package httpapi

import (
	"context"
	"net/http"

	"sns/internal/adapters/httpapi/middleware"
	postPort "sns/internal/ports/post"
	sessionPort "sns/internal/ports/session"
	userPort "sns/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.UserDTO, error)
	RegisterUser(ctx context.Context, username, password string) (*userPort.UserDTO, error)
	GetUser(ctx context.Context, id string) (*userPort.UserDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, accountID string, in postPort.CreatePostInput) (*postPort.PostDTO, error)
	GetPost(ctx context.Context, id string) (*postPort.PostDTO, error)
	CheckOwner(ctx context.Context, id, requesterID string) error
	EditPost(ctx context.Context, id, requesterID string, in postPort.EditPostInput) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, id, requesterID string) error
	LikePost(ctx context.Context, id string) (int64, error)
	ListReplies(ctx context.Context, id string) ([]*postPort.PostDTO, error)
}

type TimelineUseCase interface {
	ListTimeline(ctx context.Context, n int) ([]*postPort.PostDTO, error)
}

type RouterConfig struct {
	Logger   *zap.Logger
	Sessions sessionPort.Store
	// Registry receives the HTTP collectors and is served on /metrics.
	Registry *prometheus.Registry
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(
	userUC UserUseCase,
	postUC PostUseCase,
	timelineUC TimelineUseCase,
	cfg RouterConfig,
) *gin.Engine {
	metrics := middleware.NewMetrics(cfg.Registry)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	// recovered panics still reach the access log and metrics
	r.Use(middleware.AccessLog(cfg.Logger), metrics.Instrument(), middleware.Recovery(cfg.Logger))

	uc := NewUserController(userUC, cfg.Sessions, cfg.Logger)
	pc := NewPostController(postUC, cfg.Logger, metrics.Likes)
	tc := NewTimelineController(timelineUC, cfg.Logger)
	auth := middleware.SessionAuth(cfg.Sessions, userUC, cfg.Logger)

	// مسیرهای عمومی
	r.GET("/view/:id/", pc.ViewPost)
	r.GET("/timeline/:number/", tc.GetTimeline)
	r.GET("/like/:id/", pc.LikePost)
	r.GET("/replies/:id/", pc.ListReplies)

	// مسیرهای نیازمند نشست
	r.POST("/post/", auth, pc.CreatePost)
	r.POST("/edit/:id/", auth, pc.EditPost)
	r.POST("/delete/:id/", auth, pc.DeletePost)

	// مسیرهای ثبت‌نام و ورود
	r.POST("/signup/", uc.Signup)
	r.POST("/login/", uc.Login)
	r.POST("/logout/", uc.Logout)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	return r
}
