package atlas

import (
	"errors"
	"fmt"
)

// ErrMalformedProperty is returned for a reserved property line without a ':' separator.
var ErrMalformedProperty = errors.New("atlas: malformed property line")

// ParseError reports the line that stopped the parser.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at line %d: %q", e.Err, e.Line, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Page is one texture page block of an atlas descriptor.
type Page struct {
	Name       string            // image filename from the header line
	Properties map[string]string // page-level properties (size, format, filter, ...)
	Regions    map[string]map[string]string
	Order      []string // region names in file order
}

// Atlas holds every page in file order.
type Atlas struct {
	Pages []*Page
}

// Map returns page filename → region name → property key → raw value.
func (a *Atlas) Map() map[string]map[string]map[string]string {
	out := make(map[string]map[string]map[string]string, len(a.Pages))
	for _, p := range a.Pages {
		out[p.Name] = p.Regions
	}
	return out
}

// Region is the resolved geometry of one packed image.
type Region struct {
	Name    string
	X, Y    int
	Width   int
	Height  int
	Rotated bool // packed rotated by 90°
}

// Info is the resolver output: page pixel size and the region lookup.
type Info struct {
	Page    string
	Width   int
	Height  int
	Regions map[string]Region
}
