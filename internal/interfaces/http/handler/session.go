package handler

import (
	"github.com/gin-gonic/gin"
	onboardingapp "github.com/napment/onboarding/internal/application/onboarding"
)

// SessionHandler handles onboarding session endpoints
type SessionHandler struct {
	BaseHandler
	sessionService *onboardingapp.SessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService *onboardingapp.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Create godoc
// @Summary      Create onboarding session
// @Description  Start a new onboarding session at the welcome step. The body is optional.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body onboarding.CreateSessionRequest false "Session details"
// @Success      201 {object} dto.Response{data=onboarding.SessionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req onboardingapp.CreateSessionRequest
	if !h.BindJSON(c, &req, true) {
		return
	}

	session, err := h.sessionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// Get godoc
// @Summary      Get onboarding session
// @Description  Get an onboarding session by ID
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} dto.Response{data=onboarding.SessionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.sessionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Update godoc
// @Summary      Update onboarding session
// @Description  Apply a partial update. Omitted fields keep their values.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body onboarding.UpdateSessionRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=onboarding.SessionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sessions/{id} [patch]
func (h *SessionHandler) Update(c *gin.Context) {
	var req onboardingapp.UpdateSessionRequest
	if !h.BindJSON(c, &req, false) {
		return
	}

	session, err := h.sessionService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}
