package models

import "time"

// SearchSource says where a search result came from.
type SearchSource string

const (
	SourceMemo   SearchSource = "memo"
	SourceStore  SearchSource = "store"
	SourceRemote SearchSource = "remote"
	// SourceShared marks a caller that waited on another caller's in-flight load.
	SourceShared SearchSource = "shared"
)

// SearchEvent is the payload written to the search events topic.
type SearchEvent struct {
	Query      string        `json:"query"`
	Source     SearchSource  `json:"source"`
	NumResults int           `json:"num_results"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
	At         time.Time     `json:"at"`
}
