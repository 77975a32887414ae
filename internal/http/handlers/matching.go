package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/staffing-graph-backend/internal/http/response"
	"github.com/yungbote/staffing-graph-backend/internal/services"
)

type MatchingHandler struct {
	matching   *services.MatchingService
	conversion *services.ConversionService
}

func NewMatchingHandler(matching *services.MatchingService, conversion *services.ConversionService) *MatchingHandler {
	return &MatchingHandler{matching: matching, conversion: conversion}
}

// GET /api/v1/match/:rfp_id?threshold_months=3
func (h *MatchingHandler) FindCandidates(c *gin.Context) {
	rfpID := c.Param("rfp_id")
	threshold := 3
	if raw := c.Query("threshold_months"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_threshold", err)
			return
		}
		threshold = v
	}
	resp, err := h.matching.FindCandidates(c.Request.Context(), rfpID, threshold)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, resp)
}

type confirmMatchRequest struct {
	ProgrammerIDs []string `json:"programmer_ids"`
}

// POST /api/v1/match/:rfp_id/confirm
func (h *MatchingHandler) ConfirmMatch(c *gin.Context) {
	rfpID := c.Param("rfp_id")
	var req confirmMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_confirm_payload", err)
		return
	}
	if len(req.ProgrammerIDs) == 0 {
		response.RespondError(c, http.StatusBadRequest, "empty_team", nil)
		return
	}
	result, err := h.conversion.ConvertRFPToProject(c.Request.Context(), rfpID, req.ProgrammerIDs)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, result)
}
