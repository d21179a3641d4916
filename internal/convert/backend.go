// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"

	"github.com/pdiddy/filing-fetcher/pkg/types"
)

// New returns the converter for backend. An empty backend selects goquery.
func New(backend types.ExtractionBackend) (Converter, error) {
	switch backend {
	case "", types.BackendGoquery:
		return GoqueryConverter{}, nil
	case types.BackendHTML2Text:
		return HTML2TextConverter{}, nil
	default:
		return nil, fmt.Errorf("unknown conversion backend %q (want %s or %s)", backend, types.BackendGoquery, types.BackendHTML2Text)
	}
}
