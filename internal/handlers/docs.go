package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgdir/orgdir/internal/docs"
	"github.com/orgdir/orgdir/internal/search"
)

// DocsHandler serves API documentation sliced from the markdown source and
// the bundled example payloads.
type DocsHandler struct {
	slicer   *docs.Slicer
	examples *docs.Examples
}

// NewDocsHandler creates a new DocsHandler. Both sources are optional; the
// endpoints report 404 for whatever is missing.
func NewDocsHandler(slicer *docs.Slicer, examples *docs.Examples) *DocsHandler {
	return &DocsHandler{slicer: slicer, examples: examples}
}

// Root returns a welcome message and pointers to the documentation
func (h *DocsHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the organization directory API",
		"docs":    "/v1/docs",
	})
}

// Docs returns the system description plus per-tag and per-endpoint docs
func (h *DocsHandler) Docs(c *gin.Context) {
	if h.slicer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "documentation not available"})
		return
	}

	tags := make([]gin.H, 0, len(h.slicer.Tags()))
	for _, t := range h.slicer.Tags() {
		tags = append(tags, gin.H{"name": t.Name, "description": t.Description})
	}

	endpoints := make(map[string]string, len(h.slicer.Endpoints()))
	for _, ep := range h.slicer.Endpoints() {
		endpoints[ep] = h.slicer.EndpointDocs(ep)
	}

	c.JSON(http.StatusOK, gin.H{
		"description": h.slicer.SystemDescription(),
		"tags":        tags,
		"endpoints":   endpoints,
	})
}

// ListExamples returns the names of the bundled example payloads
func (h *DocsHandler) ListExamples(c *gin.Context) {
	if h.examples == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "examples not available"})
		return
	}

	names, err := h.examples.Names()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"examples": names})
}

// GetExample returns a single example payload by name
func (h *DocsHandler) GetExample(c *gin.Context) {
	if h.examples == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "examples not available"})
		return
	}

	example, err := h.examples.Get(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, example)
}

// ExtractEntities lists the entity leaves of a search-expression tree in
// document order without compiling it. Useful for inspecting what a stored
// expression will match against.
func (h *DocsHandler) ExtractEntities(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	entities, err := search.ExtractEntitiesJSON(body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entities": entities})
}
