// Package api exposes the built index over HTTP. It owns request/response
// framing only; ranking and lookup semantics live in the index package.
package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/absearch/absearch/config"
	apperrors "github.com/absearch/absearch/internal/errors"
	"github.com/absearch/absearch/internal/metrics"
	"github.com/absearch/absearch/model"
	"github.com/absearch/absearch/services"
)

// API holds dependencies for the HTTP handlers.
type API struct {
	index   services.Index
	metrics *metrics.Metrics
	search  config.SearchConfig
}

// NewAPI creates a new API handler structure.
func NewAPI(index services.Index, m *metrics.Metrics, search config.SearchConfig) *API {
	return &API{index: index, metrics: m, search: search}
}

// SetupRoutes defines all routes served over the index.
func SetupRoutes(router *gin.Engine, index services.Index, m *metrics.Metrics, cfg *config.Config) {
	apiHandler := NewAPI(index, m, cfg.Search)

	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/stats", apiHandler.GetStatsHandler)
	router.GET("/documents/:documentId", apiHandler.GetDocumentHandler)
	router.POST("/_search", apiHandler.SearchHandler)

	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
}

// HealthCheckHandler provides a simple health check endpoint.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "absearch",
	})
}

// GetStatsHandler returns corpus-level counters.
func (api *API) GetStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"document_count": api.index.Size(),
		"term_count":     api.index.TermCount(),
	})
}

// GetDocumentHandler retrieves a single document by its numeric id.
func (api *API) GetDocumentHandler(c *gin.Context) {
	raw := c.Param("documentId")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document id '" + raw + "': expected an unsigned integer"})
		return
	}

	doc, ok := api.index.Document(model.DocumentID(id))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document '" + raw + "': " + apperrors.ErrDocumentNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// SearchRequest defines the structure for search queries.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// SearchResponse carries the ranked hits for one query. Scores are not part
// of the public contract; only the ranking is.
type SearchResponse struct {
	Hits    []model.Document `json:"hits"`
	Total   int              `json:"total"`
	Took    int64            `json:"took_ms"`
	QueryID string           `json:"query_id"`
}

// SearchHandler evaluates a ranked keyword query against the index.
func (api *API) SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search request body: " + err.Error()})
		return
	}

	if max := api.search.MaxQueryTokens; max > 0 {
		if words := len(strings.Fields(req.Query)); words > max {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Query exceeds the maximum of " + strconv.Itoa(max) + " tokens",
			})
			return
		}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = api.search.DefaultLimit
	}

	start := time.Now()
	ids := api.index.Query(req.Query)
	api.metrics.QueryLatency.Observe(time.Since(start).Seconds())
	if len(ids) > 0 {
		api.metrics.QueriesTotal.WithLabelValues("matched").Inc()
	} else {
		api.metrics.QueriesTotal.WithLabelValues("empty").Inc()
	}

	total := len(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	hits := make([]model.Document, 0, len(ids))
	for _, id := range ids {
		if doc, ok := api.index.Document(id); ok {
			hits = append(hits, doc)
		}
	}

	c.JSON(http.StatusOK, SearchResponse{
		Hits:    hits,
		Total:   total,
		Took:    time.Since(start).Milliseconds(),
		QueryID: uuid.New().String(),
	})
}
