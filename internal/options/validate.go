// Package options provides shared input validation helpers for the CLI
// and MCP tools.
package options

import "errors"

// SingleSource checks that exactly one input source is set. sources
// flags which of the mutually exclusive inputs the caller provided.
// noneMsg and multiMsg become the error text for the zero and
// more-than-one cases.
func SingleSource(noneMsg, multiMsg string, sources ...bool) error {
	n := 0
	for _, set := range sources {
		if set {
			n++
		}
	}

	switch {
	case n == 0:
		return errors.New(noneMsg)
	case n > 1:
		return errors.New(multiMsg)
	}
	return nil
}
