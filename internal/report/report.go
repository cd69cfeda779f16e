// Package report renders recordings for people and tooling: colored
// narration with a projection table for terminals, JSON and YAML documents
// for pipelines, and an HTML chart page for browsers.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/algotrace/internal/replay"
)

// Serialization format constants.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnsupportedFormat reports a format name outside Formats.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats lists the run output formats in flag-help order.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// Write renders the recording to w in the requested format.
func Write(w io.Writer, rec *replay.Recording, format string) error {
	switch format {
	case FormatText:
		return writeText(w, rec)
	case FormatJSON:
		return marshalAndWrite(rec, jsonDocument, w, "json")
	case FormatYAML:
		return marshalAndWrite(rec, yaml.Marshal, w, "yaml")
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// marshalAndWrite marshals data and writes the result to writer.
func marshalAndWrite(data any, marshal func(any) ([]byte, error), writer io.Writer, label string) error {
	encoded, err := marshal(data)
	if err != nil {
		return fmt.Errorf("%s encode: %w", label, err)
	}

	_, writeErr := writer.Write(encoded)
	if writeErr != nil {
		return fmt.Errorf("%s write: %w", label, writeErr)
	}

	return nil
}

// jsonDocument marshals indented with a trailing newline, the shape the
// run command pipes to files and terminals.
func jsonDocument(data any) ([]byte, error) {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(encoded, '\n'), nil
}
