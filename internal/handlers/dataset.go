package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/birchwood/ethnograph/internal/dataset"
	"github.com/birchwood/ethnograph/internal/errors"
	"github.com/birchwood/ethnograph/internal/logger"
	"github.com/birchwood/ethnograph/internal/models"
	"github.com/birchwood/ethnograph/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxUploadBytes caps dataset uploads at 100 MB.
const maxUploadBytes = 100 << 20

// UploadDataset builds a fresh working view from an uploaded posts-JSON
// file. The active session's manager is replaced only after normalization
// and enrichment fully succeed; a failed upload leaves the previous view
// untouched.
// POST /api/v1/dataset
func (h *Handlers) UploadDataset(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.RespondBadRequest(c, "missing dataset file upload")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		util.RespondWithAPIError(c, errors.BadRequest("dataset file exceeds the 100MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.RespondInternalError(c, "failed to open uploaded file")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		util.RespondInternalError(c, "failed to read uploaded file")
		return
	}

	var posts []models.PostRecord
	if err := json.Unmarshal(raw, &posts); err != nil {
		util.RespondWithAPIError(c, errors.MalformedDataset(err.Error()))
		return
	}

	start := time.Now()
	mgr, err := dataset.NewManager(c.Request.Context(), posts, h.registry, h.opts)
	if err != nil {
		logger.ErrorWithFields("Dataset construction failed", err)
		util.RespondWithAPIError(c, errors.EnrichmentFailed(err.Error()))
		return
	}

	h.mu.Lock()
	h.manager = mgr
	h.mu.Unlock()

	summary := mgr.Summary()
	logger.Log.Info("Dataset constructed",
		zap.String("file", fileHeader.Filename),
		zap.Int("events", summary.TotalEvents),
		zap.Duration("duration", time.Since(start)),
	)

	c.JSON(http.StatusCreated, gin.H{
		"summary": summary,
	})
}

// GetSummary returns the dataset overview for the current working view.
// GET /api/v1/dataset/summary
func (h *Handlers) GetSummary(c *gin.Context) {
	var summary any
	ok := h.withManager(func(mgr *dataset.Manager) {
		summary = mgr.Summary()
	})
	if !ok {
		util.RespondWithAPIError(c, errors.NoDataset())
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Search narrows the working view to rows whose content contains the query
// (case-insensitive substring).
// POST /api/v1/dataset/search
func (h *Handlers) Search(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	var result dataset.FilterResult
	ok := h.withManager(func(mgr *dataset.Manager) {
		result = mgr.Search(req.Query)
	})
	if !ok {
		util.RespondWithAPIError(c, errors.NoDataset())
		return
	}
	c.JSON(http.StatusOK, result)
}

// SetTimeRange narrows the working view to rows within [start, end]
// inclusive. Bounds are RFC3339 instants.
// POST /api/v1/dataset/time-range
func (h *Handlers) SetTimeRange(c *gin.Context) {
	var req struct {
		Start time.Time `json:"start" binding:"required"`
		End   time.Time `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if req.End.Before(req.Start) {
		util.RespondValidationError(c, "end", "end must not precede start")
		return
	}

	var result dataset.FilterResult
	ok := h.withManager(func(mgr *dataset.Manager) {
		result = mgr.FilterByTimeRange(req.Start, req.End)
	})
	if !ok {
		util.RespondWithAPIError(c, errors.NoDataset())
		return
	}
	c.JSON(http.StatusOK, result)
}

// FilterSources narrows the working view to the enabled sources. An empty
// or all-false selection is rejected and the view is left unchanged.
// POST /api/v1/dataset/sources
func (h *Handlers) FilterSources(c *gin.Context) {
	var req struct {
		Sources map[string]bool `json:"sources" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	var (
		result    dataset.FilterResult
		filterErr error
	)
	ok := h.withManager(func(mgr *dataset.Manager) {
		result, filterErr = mgr.FilterBySources(req.Sources)
	})
	if !ok {
		util.RespondWithAPIError(c, errors.NoDataset())
		return
	}
	if filterErr != nil {
		if apiErr, isAPIErr := filterErr.(*errors.APIError); isAPIErr {
			util.RespondWithAPIError(c, apiErr)
		} else {
			util.RespondInternalError(c, filterErr.Error())
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// ResetDataset restores the working view from the pristine snapshot.
// POST /api/v1/dataset/reset
func (h *Handlers) ResetDataset(c *gin.Context) {
	var rows int
	ok := h.withManager(func(mgr *dataset.Manager) {
		mgr.Reset()
		rows = len(mgr.Events())
	})
	if !ok {
		util.RespondWithAPIError(c, errors.NoDataset())
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
