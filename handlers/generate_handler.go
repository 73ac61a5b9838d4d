package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nuxxor/Mevzubase/models"
	"github.com/nuxxor/Mevzubase/petitions"
)

// GenerateHandler implements the remote generation contract: POST /generate
// takes a serialized draft and answers with {html, qa_warnings}. Error
// bodies are plain text so the caller can surface them verbatim.
type GenerateHandler struct {
	generator *petitions.Generator
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(generator *petitions.Generator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

// Generate handles POST /generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	var payload models.GenerationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.String(http.StatusBadRequest, "Geçersiz istek gövdesi: %s", err.Error())
		return
	}

	output, err := h.generator.Generate(c.Request.Context(), payload)
	if err != nil {
		c.String(http.StatusInternalServerError, "Dilekçe üretilemedi: %s", err.Error())
		return
	}

	c.JSON(http.StatusOK, output)
}
