package replay

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
	"github.com/xeipuuv/gojsonschema"
)

// Recording documents are validated against this schema before decoding.
// tools/schemagen regenerates it from the Recording type.
//
//go:embed recording_schema.json
var schemaBytes []byte

// Write encodes the recording as JSON inside an lz4 frame.
func Write(w io.Writer, rec *Recording) error {
	zw := lz4.NewWriter(w)

	if err := json.NewEncoder(zw).Encode(rec); err != nil {
		return fmt.Errorf("encode recording: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close lz4 frame: %w", err)
	}

	return nil
}

// Save writes the recording to path.
func Save(path string, rec *Recording) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create recording file: %w", err)
	}

	if err := Write(file, rec); err != nil {
		file.Close()

		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close recording file: %w", err)
	}

	return nil
}

// Read decodes a recording from an lz4 frame, validating the JSON document
// against the recording schema first.
func Read(r io.Reader) (*Recording, error) {
	raw, err := io.ReadAll(lz4.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read lz4 frame: %w", err)
	}

	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var rec Recording
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode recording: %w", err)
	}

	return &rec, nil
}

// Load reads the recording at path.
func Load(path string) (*Recording, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

func validateDocument(raw []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecording, err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		details = append(details, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidRecording, strings.Join(details, "; "))
}
