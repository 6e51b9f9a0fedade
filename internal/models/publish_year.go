package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// YearKind discriminates the shapes a publish year can arrive in.
type YearKind int

const (
	YearAbsent YearKind = iota
	// YearNumber is any JSON number; its literal text is kept as sent.
	YearNumber
	// YearText is a JSON string.
	YearText
)

// PublishYear holds a first-publish year as the catalog sent it.
// Decoding never fails: values of any other JSON type decode as absent.
type PublishYear struct {
	Kind YearKind
	Raw  string
}

// NumberYear builds a numeric year.
func NumberYear(year int) PublishYear {
	return PublishYear{Kind: YearNumber, Raw: strconv.Itoa(year)}
}

// TextYear builds a year that arrived as a string.
func TextYear(year string) PublishYear {
	return PublishYear{Kind: YearText, Raw: year}
}

// Text returns the year text and whether a year was present.
func (y PublishYear) Text() (string, bool) {
	if y.Kind == YearAbsent {
		return "", false
	}
	return y.Raw, true
}

func (y *PublishYear) UnmarshalJSON(data []byte) error {
	*y = PublishYear{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*y = TextYear(s)
		}
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*y = PublishYear{Kind: YearNumber, Raw: n.String()}
		}
	}
	return nil
}

func (y PublishYear) MarshalJSON() ([]byte, error) {
	switch y.Kind {
	case YearNumber:
		return []byte(y.Raw), nil
	case YearText:
		return json.Marshal(y.Raw)
	default:
		return []byte("null"), nil
	}
}
