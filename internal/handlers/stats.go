package handlers

import (
	"net/http"

	"github.com/birchwood/ethnograph/internal/analysis"
	"github.com/birchwood/ethnograph/internal/dataset"
	"github.com/birchwood/ethnograph/internal/errors"
	"github.com/birchwood/ethnograph/internal/util"
	"github.com/gin-gonic/gin"
)

// GetTimeAnalysis computes the temporal statistics for the working view.
// GET /api/v1/stats/time
func (h *Handlers) GetTimeAnalysis(c *gin.Context) {
	var stats analysis.TimeStats
	ok := h.withManager(func(mgr *dataset.Manager) {
		stats = mgr.TimeAnalysis()
	})
	if !ok {
		util.RespondWithAPIError(c, errors.NoDataset())
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetContentAnalysis computes lexical and emotional statistics for the
// working view.
// GET /api/v1/stats/content
func (h *Handlers) GetContentAnalysis(c *gin.Context) {
	var stats analysis.ContentStats
	ok := h.withManager(func(mgr *dataset.Manager) {
		stats = mgr.ContentAnalysis()
	})
	if !ok {
		util.RespondWithAPIError(c, errors.NoDataset())
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetUserAnalysis computes per-user activity statistics and the interaction
// graph for the working view.
// GET /api/v1/stats/users
func (h *Handlers) GetUserAnalysis(c *gin.Context) {
	var stats analysis.UserAnalysis
	ok := h.withManager(func(mgr *dataset.Manager) {
		stats = mgr.UserAnalysis()
	})
	if !ok {
		util.RespondWithAPIError(c, errors.NoDataset())
		return
	}
	c.JSON(http.StatusOK, stats)
}
