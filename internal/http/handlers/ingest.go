package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/staffing-graph-backend/internal/domain"
	"github.com/yungbote/staffing-graph-backend/internal/http/response"
	"github.com/yungbote/staffing-graph-backend/internal/services"
)

// IngestHandler covers the three write entry points: one CV, one RFP,
// a project batch.
type IngestHandler struct {
	cvs      *services.CVService
	rfps     *services.RFPService
	projects *services.ProjectService
}

func NewIngestHandler(cvs *services.CVService, rfps *services.RFPService, projects *services.ProjectService) *IngestHandler {
	return &IngestHandler{cvs: cvs, rfps: rfps, projects: projects}
}

// POST /api/v1/ingest/cv
func (h *IngestHandler) IngestCV(c *gin.Context) {
	var cv domain.CVStructure
	if err := c.ShouldBindJSON(&cv); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_cv_payload", err)
		return
	}
	result, err := h.cvs.UpsertPerson(c.Request.Context(), cv)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// POST /api/v1/ingest/rfp
func (h *IngestHandler) IngestRFP(c *gin.Context) {
	var rfp domain.RFPStructure
	if err := c.ShouldBindJSON(&rfp); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_rfp_payload", err)
		return
	}
	result, err := h.rfps.SaveRFP(c.Request.Context(), rfp)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, result)
}

type bulkProjectsRequest struct {
	Projects []domain.ProjectStructure `json:"projects"`
}

// POST /api/v1/ingest/projects
func (h *IngestHandler) IngestProjects(c *gin.Context) {
	var req bulkProjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_projects_payload", err)
		return
	}
	result := h.projects.BulkUpsertProjects(c.Request.Context(), req.Projects)
	response.RespondOK(c, result)
}
