package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgdir/orgdir/internal/metrics"
	"github.com/orgdir/orgdir/internal/models"
	"github.com/orgdir/orgdir/internal/search"
	"github.com/orgdir/orgdir/internal/services"
)

// CompanyHandler handles company endpoints
type CompanyHandler struct {
	companyService *services.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// CreateCompany creates a new company
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req models.CompanyCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	company, err := h.companyService.CreateCompany(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company.ToResponse())
}

// ListCompanies returns a page of companies ordered by id
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	offset, limit, ok := listParams(c)
	if !ok {
		return
	}

	companies, err := h.companyService.ListCompanies(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(companies) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Companies not found"})
		return
	}

	c.JSON(http.StatusOK, companyResponses(companies))
}

// GetCompany retrieves a company by ID
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompanyByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, company.ToResponse())
}

// UpdateCompany handles PATCH (partial) and PUT (full replace)
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.CompanyUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	partial := c.Request.Method == http.MethodPatch
	company, err := h.companyService.UpdateCompany(id, req, partial)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, company.ToResponse())
}

// DeleteCompany removes a company by ID
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.companyService.DeleteCompany(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SearchCompanies deserializes a search-expression tree from the request
// body, compiles it and returns the matching companies.
func (h *CompanyHandler) SearchCompanies(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	tree, err := search.Decode(body)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("Company", "rejected").Inc()
		respondError(c, err)
		return
	}

	companies, err := h.companyService.SearchCompanies(tree)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("Company", "error").Inc()
		respondError(c, err)
		return
	}

	metrics.SearchesTotal.WithLabelValues("Company", "ok").Inc()
	c.JSON(http.StatusOK, companyResponses(companies))
}

func companyResponses(companies []*models.Company) []*models.CompanyResponse {
	out := make([]*models.CompanyResponse, len(companies))
	for i, co := range companies {
		out[i] = co.ToResponse()
	}
	return out
}
