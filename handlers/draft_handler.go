package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nuxxor/Mevzubase/editor"
	"github.com/nuxxor/Mevzubase/models"
	"github.com/nuxxor/Mevzubase/service"
)

// DraftHandler handles HTTP requests for the live draft
type DraftHandler struct {
	syncService *service.SyncService
	genService  *service.GenerationService
	surface     editor.Surface
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(syncService *service.SyncService, genService *service.GenerationService, surface editor.Surface) *DraftHandler {
	return &DraftHandler{
		syncService: syncService,
		genService:  genService,
		surface:     surface,
	}
}

// GetDraft handles GET /api/draft
func (h *DraftHandler) GetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.syncService.Draft(),
	})
}

// ReplaceDraft handles PUT /api/draft
func (h *DraftHandler) ReplaceDraft(c *gin.Context) {
	var draft models.PetitionDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	h.syncService.ReplaceDraft(draft)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.syncService.Draft(),
	})
}

// UpdateFieldRequest represents the request body for a scalar field update
type UpdateFieldRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// UpdateField handles POST /api/draft/fields
func (h *DraftHandler) UpdateField(c *gin.Context) {
	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if err := h.syncService.UpdateField(req.Key, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FIELD",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.syncService.Draft(),
	})
}

// AppendListItem handles POST /api/draft/:list/items
func (h *DraftHandler) AppendListItem(c *gin.Context) {
	item, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if err := h.syncService.AppendListItem(c.Param("list"), json.RawMessage(item)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ITEM",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.syncService.Draft(),
	})
}

// UpdateListItem handles PATCH /api/draft/:list/items/:index
func (h *DraftHandler) UpdateListItem(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_INDEX",
				"message": "Invalid list index",
			},
		})
		return
	}

	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if err := h.syncService.UpdateListItem(c.Param("list"), idx, json.RawMessage(patch)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PATCH",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.syncService.Draft(),
	})
}

// RemoveListItem handles DELETE /api/draft/:list/items/:index
func (h *DraftHandler) RemoveListItem(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_INDEX",
				"message": "Invalid list index",
			},
		})
		return
	}

	if err := h.syncService.RemoveListItem(c.Param("list"), idx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_LIST",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.syncService.Draft(),
	})
}

// Generate handles POST /api/draft/generate
func (h *DraftHandler) Generate(c *gin.Context) {
	result, err := h.genService.Generate(c.Request.Context())
	if err != nil {
		status := http.StatusBadGateway
		code := "GENERATION_FAILED"
		if errors.Is(err, service.ErrGenerationInFlight) {
			status = http.StatusConflict
			code = "GENERATION_IN_FLIGHT"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// ResetRequest represents the request body for a draft reset
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// Reset handles POST /api/draft/reset
func (h *DraftHandler) Reset(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if err := h.syncService.Reset(c.Request.Context(), req.Confirm); err != nil {
		status := http.StatusInternalServerError
		code := "RESET_FAILED"
		if errors.Is(err, service.ErrResetNotConfirmed) {
			status = http.StatusBadRequest
			code = "CONFIRMATION_REQUIRED"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.syncService.Draft(),
	})
}

// Status handles GET /api/draft/status
func (h *DraftHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"last_saved": h.syncService.LastSaved(),
			"warnings":   h.genService.Warnings(),
			"generating": h.genService.InFlight(),
		},
	})
}

// GetContent handles GET /api/draft/content
func (h *DraftHandler) GetContent(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"content": h.surface.GetContent(),
			"empty":   h.surface.IsEmpty(),
		},
	})
}

// SetContentRequest represents the request body for replacing editor content
type SetContentRequest struct {
	Content string `json:"content"`
}

// SetContent handles PUT /api/draft/content, standing in for user edits
// arriving from the editing surface
func (h *DraftHandler) SetContent(c *gin.Context) {
	var req SetContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	h.surface.SetContent(req.Content)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
