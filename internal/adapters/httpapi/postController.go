package httpapi

import (
	"net/http"

	"sns/internal/adapters/httpapi/middleware"
	postPort "sns/internal/ports/post"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type PostController struct {
	pc     PostUseCase
	logger *zap.Logger
	likes  prometheus.Counter
}

func NewPostController(pc PostUseCase, logger *zap.Logger, likes prometheus.Counter) *PostController {
	return &PostController{pc: pc, logger: logger, likes: likes}
}

type postRequest struct {
	Content string  `json:"content"`
	Related *string `json:"related"`
}

func (ctl *PostController) ViewPost(c *gin.Context) {
	res, err := ctl.pc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// LikePost is served on GET; every fetch of the URL counts as a like.
func (ctl *PostController) LikePost(c *gin.Context) {
	liked, err := ctl.pc.LikePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	if ctl.likes != nil {
		ctl.likes.Inc()
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (ctl *PostController) ListReplies(c *gin.Context) {
	res, err := ctl.pc.ListReplies(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidJSON(c)
		return
	}

	res, err := ctl.pc.CreatePost(c.Request.Context(), userID, postPort.CreatePostInput{
		Content:   req.Content,
		RelatedID: req.Related,
	})
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": res.ID})
}

func (ctl *PostController) EditPost(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	id := c.Param("id")

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// a missing post or a foreign one wins over a malformed body
		if err := ctl.pc.CheckOwner(c.Request.Context(), id, userID); err != nil {
			writeError(c, ctl.logger, err)
			return
		}
		invalidJSON(c)
		return
	}

	res, err := ctl.pc.EditPost(c.Request.Context(), id, userID, postPort.EditPostInput{
		Content:   req.Content,
		RelatedID: req.Related,
	})
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	if err := ctl.pc.DeletePost(c.Request.Context(), c.Param("id"), userID); err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
