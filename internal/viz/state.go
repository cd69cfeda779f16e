package viz

import "fmt"

// ElementState classifies how an element should be drawn.
type ElementState uint8

const (
	StateNormal ElementState = iota
	StateHighlighted
	StateActive
	StateSorted
	StateComparing
	StateSwapping
)

var stateNames = map[ElementState]string{
	StateNormal:      "normal",
	StateHighlighted: "highlighted",
	StateActive:      "active",
	StateSorted:      "sorted",
	StateComparing:   "comparing",
	StateSwapping:    "swapping",
}

// String returns the canonical lowercase name of the state.
func (s ElementState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return "normal"
}

// MarshalText implements encoding.TextMarshaler so render states serialize
// with readable state names.
func (s ElementState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ElementState) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state

			return nil
		}
	}

	return fmt.Errorf("%w: element state %q", ErrVisualization, string(text))
}

// MarshalYAML implements yaml.Marshaler using the canonical name.
func (s ElementState) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler using the canonical name.
func (s *ElementState) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}

	return s.UnmarshalText([]byte(name))
}

// Element is one drawable cell or node. Label is the primary caption,
// Sublabel an auxiliary tag such as a slot index, a color mark or a
// TOP/FRONT/BACK marker.
type Element struct {
	Value    int64        `json:"value"              yaml:"value"`
	Label    string       `json:"label,omitempty"    yaml:"label,omitempty"`
	Sublabel string       `json:"sublabel,omitempty" yaml:"sublabel,omitempty"`
	State    ElementState `json:"state"              yaml:"state"`
}

// RenderState is a structure's drawable projection. Elements are listed in
// the structure's natural position order; Connections are parent-to-child
// index pairs into Elements for linked shapes, empty for flat sequences.
type RenderState struct {
	Elements    []Element `json:"elements"              yaml:"elements"`
	Connections [][2]int  `json:"connections,omitempty" yaml:"connections,omitempty"`
}
