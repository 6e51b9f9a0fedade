package main

import (
	"errors"
	"fmt"

	"bookworm-search/internal/ol"
	"bookworm-search/internal/query"
)

// describeError turns search failures into messages fit for a terminal.
func describeError(err error) error {
	var verr *query.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	var rerr *ol.RemoteError
	if errors.As(err, &rerr) {
		if rerr.StatusCode != 0 {
			return fmt.Errorf("catalog service returned status %d, try again later", rerr.StatusCode)
		}
		return fmt.Errorf("catalog service unreachable: %w", rerr.Err)
	}
	return err
}
