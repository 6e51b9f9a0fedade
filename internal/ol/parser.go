package ol

import (
	"encoding/json"
	"errors"

	"bookworm-search/internal/models"
)

var errMissingDocs = errors.New("response has no docs array")

// ParseSearchResponse parses Open Library search JSON. A body without a
// "docs" key is rejected; an empty array is a valid zero-result response.
func ParseSearchResponse(body []byte) (models.SearchResponse, error) {
	var envelope struct {
		Docs json.RawMessage `json:"docs"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return models.SearchResponse{}, err
	}
	if len(envelope.Docs) == 0 || string(envelope.Docs) == "null" {
		return models.SearchResponse{}, errMissingDocs
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.SearchResponse{}, err
	}
	if resp.Docs == nil {
		resp.Docs = []models.SearchDoc{}
	}
	return resp, nil
}
