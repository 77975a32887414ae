package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/staffing-graph-backend/internal/http/response"
	"github.com/yungbote/staffing-graph-backend/internal/services"
)

// EntityHandler serves the read-side list views.
type EntityHandler struct {
	cvs      *services.CVService
	rfps     *services.RFPService
	projects *services.ProjectService
}

func NewEntityHandler(cvs *services.CVService, rfps *services.RFPService, projects *services.ProjectService) *EntityHandler {
	return &EntityHandler{cvs: cvs, rfps: rfps, projects: projects}
}

// GET /api/v1/programmers
func (h *EntityHandler) ListProgrammers(c *gin.Context) {
	out, err := h.cvs.ListProgrammers(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"programmers": out, "count": len(out)})
}

// GET /api/v1/rfps
func (h *EntityHandler) ListRFPs(c *gin.Context) {
	out, err := h.rfps.ListRFPs(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rfps": out, "count": len(out)})
}

// GET /api/v1/rfps/next-id
func (h *EntityHandler) NextRFPID(c *gin.Context) {
	id, err := h.rfps.NextRFPID(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"next_id": id})
}

// GET /api/v1/projects
func (h *EntityHandler) ListProjects(c *gin.Context) {
	out, err := h.projects.ListProjects(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"projects": out, "count": len(out)})
}
