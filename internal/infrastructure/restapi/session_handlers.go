package restapi

import (
	"net/http"

	"mixin_wallet/internal/app/port"
	"mixin_wallet/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// SessionResponse describes the connection state.
type SessionResponse struct {
	State   string          `json:"state"`
	Profile *entity.Profile `json:"profile,omitempty"`
}

// AuthenticateRequest carries the OAuth access token obtained by the web view.
type AuthenticateRequest struct {
	Token string `json:"token" binding:"required"`
}

// SessionHandler serves the session endpoints.
type SessionHandler struct {
	session port.SessionService
	logger  port.Logger
}

func NewSessionHandler(session port.SessionService, l port.Logger) *SessionHandler {
	return &SessionHandler{session: session, logger: l}
}

// GetSessionHandler returns the current session.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, sessionResponse(h.session.Session()))
}

// AuthenticateHandler completes authentication with the posted token. A token the
// provider does not accept leaves the session disconnected and still answers 200.
func (h *SessionHandler) AuthenticateHandler(c *gin.Context) {
	var req AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.session.CompleteAuthentication(c.Request.Context(), req.Token); err != nil {
		h.logger.Error("Authentication failed", "error", err)
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(h.session.Session()))
}

// DisconnectHandler drops the session.
func (h *SessionHandler) DisconnectHandler(c *gin.Context) {
	h.session.Disconnect()
	c.JSON(http.StatusOK, sessionResponse(h.session.Session()))
}

func sessionResponse(s entity.Session) SessionResponse {
	return SessionResponse{State: s.State.String(), Profile: s.Profile}
}
