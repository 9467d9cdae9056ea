// Package generate hosts the quota gate in front of the generation and
// transcription collaborators. The collaborators themselves are injected
// boundary interfaces; this package owns none of their protocol.
package generate

import (
	"log"
	"net/http"
	"strings"

	"vividmedi-backend/internal/app/http/middleware"
	"vividmedi-backend/internal/entitlement"
	"vividmedi-backend/internal/generation"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Entitlements *entitlement.Service
	Generator    generation.Generator
	Transcriber  generation.Transcriber
}

func NewHandler(ent *entitlement.Service, gen generation.Generator, tr generation.Transcriber) *Handler {
	return &Handler{Entitlements: ent, Generator: gen, Transcriber: tr}
}

// Generate answers a clinical query, charging one unit of quota whether or
// not the request ends up allowed.
// POST /api/generate
func (h *Handler) Generate(c *gin.Context) {
	var body struct {
		Query string `json:"query"`
		Mode  string `json:"mode"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty query"})
		return
	}

	mode := strings.ToLower(strings.TrimSpace(body.Mode))
	if mode == "" {
		mode = "clinical"
	}

	h.gateAndRun(c, mode, strings.TrimSpace(body.Query))
}

// Consult turns raw dictation into a structured note under the same gate.
// POST /api/consult
func (h *Handler) Consult(c *gin.Context) {
	var body struct {
		Text string `json:"text"`
		Mode string `json:"mode"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty input"})
		return
	}

	mode := strings.ToLower(strings.TrimSpace(body.Mode))
	if mode == "" {
		mode = "consult_note"
	}

	h.gateAndRun(c, mode, strings.TrimSpace(body.Text))
}

func (h *Handler) gateAndRun(c *gin.Context, mode, input string) {
	d, err := h.Entitlements.RecordAttemptAndCheck(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record usage"})
		return
	}
	if !d.Allowed {
		c.JSON(http.StatusPaymentRequired, quotaBlockPayload(d))
		return
	}

	if h.Generator == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server misconfigured: missing DEEPSEEK_API_KEY"})
		return
	}

	answer, err := h.Generator.Generate(c.Request.Context(), mode, input)
	if err != nil {
		log.Println("GENERATION ERROR:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// Transcribe relays an audio upload to the speech-to-text collaborator.
// Not quota-gated: dictation only becomes a generation when the text is
// submitted to one of the gated endpoints.
// POST /api/transcribe
func (h *Handler) Transcribe(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing audio"})
		return
	}
	defer file.Close()

	if h.Transcriber == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transcription not configured"})
		return
	}

	text, err := h.Transcriber.Transcribe(c.Request.Context(), file, header.Filename)
	if err != nil {
		log.Println("TRANSCRIBE ERROR:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transcription failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}
