// Package main regenerates the recording JSON schema embedded by the
// replay package from the Recording struct itself.
package main

import (
	"encoding"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/Sumatoshi-tech/algotrace/internal/replay"
)

// Schema represents a JSON Schema.
type Schema struct {
	Schema      string             `json:"$schema,omitempty"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Type        string             `json:"type,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Ref         string             `json:"$ref,omitempty"`
	Definitions map[string]*Schema `json:"definitions,omitempty"`
}

var textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

var outputPath string

func main() {
	flag.StringVar(&outputPath, "o", "internal/replay/recording_schema.json",
		"Output path for the recording schema")
	flag.Parse()

	schema := generateSchema(&replay.Recording{})

	if err := writeSchema(outputPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing recording schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outputPath)
}

func generateSchema(v any) *Schema {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	defs := make(map[string]*Schema)
	props, required := structToProperties(t, defs)

	schema := &Schema{
		Schema:      "https://json-schema.org/draft-07/schema#",
		Title:       "Trace Recording",
		Description: "JSON schema for the algotrace .atrace recording document",
		Type:        "object",
		Properties:  props,
		Required:    required,
	}

	if len(defs) > 0 {
		schema.Definitions = defs
	}

	return schema
}

func structToProperties(t reflect.Type, defs map[string]*Schema) (map[string]*Schema, []string) {
	props := make(map[string]*Schema)

	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")

		if jsonTag == "-" || jsonTag == "" {
			continue
		}

		parts := strings.Split(jsonTag, ",")
		jsonName := parts[0]
		isOmitempty := len(parts) > 1 && parts[1] == "omitempty"

		fieldSchema := typeToSchema(field.Type, defs)
		props[jsonName] = fieldSchema

		if !isOmitempty {
			required = append(required, jsonName)
		}
	}

	return props, required
}

func typeToSchema(t reflect.Type, defs map[string]*Schema) *Schema {
	// Enum types marshal through MarshalText, so they appear as strings
	// in the document regardless of their Go kind.
	if t.Kind() != reflect.Ptr && t.Implements(textMarshalerType) {
		return &Schema{Type: "string"}
	}

	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &Schema{Type: "integer"}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}

	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}

	case reflect.Bool:
		return &Schema{Type: "boolean"}

	case reflect.Slice, reflect.Array:
		return &Schema{
			Type:  "array",
			Items: typeToSchema(t.Elem(), defs),
		}

	case reflect.Map:
		return &Schema{
			Type: "object",
			Description: fmt.Sprintf("Map with %s keys and %s values",
				t.Key().Kind().String(), t.Elem().Kind().String()),
		}

	case reflect.Struct:
		defName := t.Name()
		if defName == "" {
			props, required := structToProperties(t, defs)

			return &Schema{Type: "object", Properties: props, Required: required}
		}

		if _, exists := defs[defName]; !exists {
			props, required := structToProperties(t, defs)
			defs[defName] = &Schema{Type: "object", Properties: props, Required: required}
		}

		return &Schema{Ref: "#/definitions/" + defName}

	case reflect.Ptr:
		return typeToSchema(t.Elem(), defs)

	default:
		return &Schema{Type: "object"}
	}
}

func writeSchema(path string, schema *Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	return os.WriteFile(path, append(data, '\n'), 0o644)
}
