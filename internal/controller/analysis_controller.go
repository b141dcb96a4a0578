package controller

import (
	"candypang_backend/internal/service"
	"candypang_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalysisController struct {
	AnalysisService *service.AnalysisService
}

func NewAnalysisController(analysisService *service.AnalysisService) *AnalysisController {
	return &AnalysisController{AnalysisService: analysisService}
}

type analyzeRequest struct {
	Entries []service.AnalysisEntry `json:"entries" binding:"required,min=1"`
}

// Analyze godoc
// @Summary Analyze a batch of journal entries
// @Description Summarises keywords and picks students to highlight. Uses the configured AI collaborator and falls back to a local heuristic when it is unreachable; the fallback flag marks which path produced the result
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body analyzeRequest true "entries to analyze"
// @Success 200 {object} util.Response{data=service.AnalysisResult}
// @Router /api/teacher/analysis [post]
func (c *AnalysisController) Analyze(ctx *gin.Context) {
	var req analyzeRequest
	if !bindJSON(ctx, &req) {
		return
	}
	util.Success(ctx, c.AnalysisService.Analyze(req.Entries))
}
