package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/renalplate/backend/internal/domain"
)

const (
	serviceName    = "renalplate-backend"
	serviceVersion = "1.0.0"
	maxResultsCap  = 25
)

// FoodLookup is the part of the lookup service the handlers depend on
type FoodLookup interface {
	Lookup(ctx context.Context, query string, maxResults int) []domain.FoodQueryResult
	AnalyzeIntake(ctx context.Context, items []string, maxResults int) []domain.IntakeReport
	AnalyzeInput(ctx context.Context, input string, maxResults int) []domain.IntakeReport
	Rules() []domain.AdvisoryRule
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	lookup   FoodLookup
	provider string
}

// NewHandler creates a new HTTP handler. A nil lookup makes the API
// endpoints answer 501.
func NewHandler(lookup FoodLookup, provider string) *Handler {
	return &Handler{lookup: lookup, provider: provider}
}

// LookupQuery is the query string of GET /api/v1/foods/lookup
type LookupQuery struct {
	Query      string `form:"query" binding:"required"`
	MaxResults int    `form:"max" binding:"omitempty,min=1"`
}

// LookupResponse wraps the result rows of one lookup
type LookupResponse struct {
	Query   string                   `json:"query"`
	Results []domain.FoodQueryResult `json:"results"`
}

// IntakeRequest is the body of POST /api/v1/intake/analyze. Either Items or
// a comma-separated Input must be given.
type IntakeRequest struct {
	Items      []string `json:"items"`
	Input      string   `json:"input"`
	MaxResults int      `json:"maxResults" binding:"omitempty,min=1"`
}

// IntakeResponse holds one report per intake item
type IntakeResponse struct {
	Reports []domain.IntakeReport `json:"reports"`
}

// RulesResponse lists the active advisory table
type RulesResponse struct {
	Rules []domain.AdvisoryRule `json:"rules"`
}

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  serviceName,
		"version":  serviceVersion,
		"provider": h.provider,
	})
}

// LookupFoods handles single food lookups
func (h *Handler) LookupFoods(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var query LookupQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query parameter is required and max must be positive"})
		return
	}

	results := h.lookup.Lookup(c.Request.Context(), query.Query, clampMax(query.MaxResults))
	c.JSON(http.StatusOK, LookupResponse{
		Query:   strings.TrimSpace(query.Query),
		Results: results,
	})
}

// AnalyzeIntake handles multi-food intake analysis
func (h *Handler) AnalyzeIntake(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var req IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	maxResults := clampMax(req.MaxResults)
	var reports []domain.IntakeReport
	switch {
	case len(req.Items) > 0:
		reports = h.lookup.AnalyzeIntake(c.Request.Context(), req.Items, maxResults)
	case strings.TrimSpace(req.Input) != "":
		reports = h.lookup.AnalyzeInput(c.Request.Context(), req.Input, maxResults)
	}

	if len(reports) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no food items given"})
		return
	}

	c.JSON(http.StatusOK, IntakeResponse{Reports: reports})
}

// ListRules returns the advisory thresholds in evaluation order
func (h *Handler) ListRules(c *gin.Context) {
	if !h.configured(c) {
		return
	}
	c.JSON(http.StatusOK, RulesResponse{Rules: h.lookup.Rules()})
}

func (h *Handler) configured(c *gin.Context) bool {
	if h.lookup == nil {
		c.JSON(http.StatusNotImplemented, ErrorResponse{Error: "lookup service not configured"})
		return false
	}
	return true
}

// clampMax keeps caller-supplied limits within what the provider serves in
// one page. Zero means the service default.
func clampMax(n int) int {
	if n > maxResultsCap {
		return maxResultsCap
	}
	return n
}
