package users

import (
	"net/http"

	"vividmedi-backend/internal/app/http/middleware"
	"vividmedi-backend/internal/entitlement"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Entitlements *entitlement.Service
}

func NewHandler(ent *entitlement.Service) *Handler {
	return &Handler{Entitlements: ent}
}

// Me reports the actor's standing without consuming a unit of quota.
// GET /api/me
func (h *Handler) Me(c *gin.Context) {
	a := middleware.CurrentActor(c)

	d, err := h.Entitlements.Status(c.Request.Context(), a)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load usage"})
		return
	}

	resp := MeResponse{
		LoggedIn:  a.LoggedIn(),
		Plan:      "guest",
		Used:      d.Used,
		Limit:     d.Limit,
		Remaining: max64(0, d.Limit-d.Used),
	}
	if a.User != nil {
		resp.Email = &a.User.Email
		resp.Plan = a.User.Plan
	}

	c.JSON(http.StatusOK, resp)
}

// EnsureSession just guarantees the guest cookie exists; the actor
// middleware has already minted it by the time we get here.
// GET /api/session
func (h *Handler) EnsureSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
