package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"farm-fresh/models"
	"farm-fresh/services"
	"farm-fresh/utils"
)

type SessionController struct {
	sessions *services.SessionService
	secret   string
	expiry   time.Duration
}

func NewSessionController(sessions *services.SessionService, secret string, expiry time.Duration) *SessionController {
	return &SessionController{sessions: sessions, secret: secret, expiry: expiry}
}

// @Summary Start a session
// @Description Creates an empty cart and returns the token that identifies it
// @Tags Sessions
// @Produce json
// @Success 201 {object} models.Response{data=models.SessionResponse}
// @Failure 500 {object} models.ErrorResponse
// @Router /sessions [post]
func (ctrl *SessionController) CreateSession(c *gin.Context) {
	sess := ctrl.sessions.Create()

	token, expiresAt, err := utils.GenerateSessionToken(ctrl.secret, sess.ID, ctrl.expiry, time.Now())
	if err != nil {
		ctrl.sessions.Delete(sess.ID)
		respondError(c, "Failed to create session", err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Session created",
		Data: models.SessionResponse{
			SessionID: sess.ID,
			Token:     token,
			ExpiresAt: expiresAt.Unix(),
		},
	})
}
