// Package step defines the trace vocabulary shared by every instrumented
// structure: the Step record describing one atomic change or observation,
// and the Operation request consumed to produce a trace.
package step

import "fmt"

// Metadata keys used across structure traces. Values are always strings so
// a recording can be inspected without knowing the emitting structure.
const (
	MetaOp         = "op"
	MetaValue      = "value"
	MetaIndex      = "index"
	MetaColor      = "color"
	MetaCase       = "case"
	MetaFound      = "found"
	MetaFixup      = "fixup"
	MetaOrder      = "order"
	MetaSuccessor  = "successor"
	MetaArrayState = "array_state"
)

// Step is an immutable description of one atomic change or observation.
// Highlights mark positions under passive attention, Active marks positions
// currently being acted upon; both use the emitting structure's position
// indexing (complete-binary-tree indices for trees, slot indices for
// sequences).
type Step struct {
	Description string            `json:"description"          yaml:"description"`
	Highlights  []int             `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Active      []int             `json:"active,omitempty"     yaml:"active,omitempty"`
	Meta        map[string]string `json:"meta,omitempty"       yaml:"meta,omitempty"`
}

// New creates a Step with a formatted description and no index sets.
func New(format string, args ...any) Step {
	if len(args) == 0 {
		return Step{Description: format}
	}

	return Step{Description: fmt.Sprintf(format, args...)}
}

// WithHighlights returns a copy of the step with the given highlight indices.
func (s Step) WithHighlights(indices ...int) Step {
	s.Highlights = indices

	return s
}

// WithActive returns a copy of the step with the given active indices.
func (s Step) WithActive(indices ...int) Step {
	s.Active = indices

	return s
}

// WithMeta returns a copy of the step with an additional metadata entry.
// The metadata map is copied on first write so shared steps stay immutable.
func (s Step) WithMeta(key, value string) Step {
	meta := make(map[string]string, len(s.Meta)+1)
	for k, v := range s.Meta {
		meta[k] = v
	}

	meta[key] = value
	s.Meta = meta

	return s
}
