package httpapi

import (
	"errors"
	"net/http"

	"sns/internal/core/errs"
	sessionPort "sns/internal/ports/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	uc       UserUseCase
	sessions sessionPort.Store
	logger   *zap.Logger
}

func NewUserController(uc UserUseCase, sessions sessionPort.Store, logger *zap.Logger) *UserController {
	return &UserController{uc: uc, sessions: sessions, logger: logger}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ctl *UserController) Signup(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidJSON(c)
		return
	}

	_, err := ctl.uc.RegisterUser(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, errs.ErrConflict) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully"})
}

// Login establishes a session only when the credentials are valid.
func (ctl *UserController) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidJSON(c)
		return
	}

	u, err := ctl.uc.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}

	if err := ctl.sessions.Save(c.Writer, c.Request, u.ID); err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

func (ctl *UserController) Logout(c *gin.Context) {
	if err := ctl.sessions.Clear(c.Writer, c.Request); err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
