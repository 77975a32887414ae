package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/staffing-graph-backend/internal/http/response"
	"github.com/yungbote/staffing-graph-backend/internal/services"
)

type AdminHandler struct {
	admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// POST /api/v1/admin/reset
func (h *AdminHandler) Reset(c *gin.Context) {
	result, err := h.admin.Reset(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// GET /api/v1/admin/ingestions?limit=50
func (h *AdminHandler) ListIngestions(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = v
	}
	runs, err := h.admin.ListIngestions(c.Request.Context(), limit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ingestions": runs, "count": len(runs)})
}
