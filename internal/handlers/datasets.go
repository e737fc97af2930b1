package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/birchwood/ethnograph/internal/dataset"
	"github.com/birchwood/ethnograph/internal/enrich"
	"github.com/birchwood/ethnograph/internal/errors"
	"github.com/birchwood/ethnograph/internal/logger"
	"github.com/birchwood/ethnograph/internal/models"
	"github.com/birchwood/ethnograph/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SaveDataset persists the pristine snapshot of the current session under a
// name, so the enrichment work can be reloaded without re-running NLP calls.
// POST /api/v1/datasets
func (h *Handlers) SaveDataset(c *gin.Context) {
	if h.store == nil {
		util.RespondWithAPIError(c, errors.ServiceUnavailable("dataset persistence"))
		return
	}

	var req struct {
		Name string `json:"name" binding:"required,min=1,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	var (
		saved   *models.Dataset
		saveErr error
	)
	ok := h.withManager(func(mgr *dataset.Manager) {
		saved, saveErr = h.store.SaveDataset(req.Name, mgr.Pristine())
	})
	if !ok {
		util.RespondWithAPIError(c, errors.NoDataset())
		return
	}
	if saveErr != nil {
		logger.ErrorWithFields("Dataset save failed", saveErr)
		util.RespondInternalError(c, "failed to save dataset")
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// ListDatasets returns the saved dataset catalog, newest first.
// GET /api/v1/datasets
func (h *Handlers) ListDatasets(c *gin.Context) {
	if h.store == nil {
		util.RespondWithAPIError(c, errors.ServiceUnavailable("dataset persistence"))
		return
	}

	datasets, err := h.store.ListDatasets()
	if err != nil {
		logger.ErrorWithFields("Dataset list failed", err)
		util.RespondInternalError(c, "failed to list datasets")
		return
	}
	c.JSON(http.StatusOK, gin.H{"datasets": datasets})
}

// LoadDataset restores a saved dataset as the active session. Temporal
// derivations are recomputed on load; topic and emotion enrichment come back
// from storage as saved.
// POST /api/v1/datasets/:id/load
func (h *Handlers) LoadDataset(c *gin.Context) {
	if h.store == nil {
		util.RespondWithAPIError(c, errors.ServiceUnavailable("dataset persistence"))
		return
	}

	id := c.Param("id")
	events, labels, err := h.store.LoadDataset(id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			util.RespondNotFound(c, "dataset")
			return
		}
		logger.ErrorWithFields("Dataset load failed", err)
		util.RespondInternalError(c, "failed to load dataset")
		return
	}

	enrich.ApplyTemporal(events)
	mgr := dataset.NewManagerFromEnriched(events, labels, h.opts)

	h.mu.Lock()
	h.manager = mgr
	h.mu.Unlock()

	logger.Log.Info("Dataset loaded",
		zap.String("dataset_id", id),
		zap.Int("events", len(events)),
	)
	c.JSON(http.StatusOK, gin.H{"summary": mgr.Summary()})
}

// DeleteDataset removes a saved dataset and its rows. The active session is
// unaffected even if it was loaded from the deleted dataset.
// DELETE /api/v1/datasets/:id
func (h *Handlers) DeleteDataset(c *gin.Context) {
	if h.store == nil {
		util.RespondWithAPIError(c, errors.ServiceUnavailable("dataset persistence"))
		return
	}

	id := c.Param("id")
	if err := h.store.DeleteDataset(id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			util.RespondNotFound(c, "dataset")
			return
		}
		logger.ErrorWithFields("Dataset delete failed", err)
		util.RespondInternalError(c, "failed to delete dataset")
		return
	}
	c.Status(http.StatusNoContent)
}
