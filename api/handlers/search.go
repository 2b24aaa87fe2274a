// ABOUTME: Search handler for the Huma API
// ABOUTME: Exposes the web research pipeline as a single HTTP operation

package handlers

import (
	"context"
	"net/http"

	"webresearch-api/core/domain"
	"webresearch-api/core/interfaces"

	"github.com/danielgtaylor/huma/v2"
)

// SearchHandler handles web research requests
type SearchHandler struct {
	researchService interfaces.ResearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(researchService interfaces.ResearchService) *SearchHandler {
	return &SearchHandler{
		researchService: researchService,
	}
}

// RegisterRoutes registers all search-related routes
func (h *SearchHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "searchWeb",
		Method:      http.MethodPost,
		Path:        "/search",
		Summary:     "Research a topic on the web",
		Description: "Searches the web for a query, ranks the hits, and deep-fetches the full text of the most relevant pages",
		Tags:        []string{"Search"},
	}, h.SearchWeb)
}

// SearchWebInput defines the input for the SearchWeb operation
type SearchWebInput struct {
	Body struct {
		Query string `json:"query" minLength:"1" maxLength:"400" doc:"Natural-language search query"`
	}
}

// SearchWebOutput defines the output for the SearchWeb operation
type SearchWebOutput struct {
	Body domain.SearchResponse
}

// SearchWeb handles web research requests
func (h *SearchHandler) SearchWeb(ctx context.Context, input *SearchWebInput) (*SearchWebOutput, error) {
	response := h.researchService.SearchWeb(ctx, input.Body.Query)

	return &SearchWebOutput{
		Body: response,
	}, nil
}
