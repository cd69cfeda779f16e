// Package scenario parses operation scripts: the YAML scenario files the
// run command replays and the compact op lists accepted on the command
// line and over MCP.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
)

// ErrEmptyScenario indicates the scenario document contains no entries.
var ErrEmptyScenario = errors.New("scenario contains no entries")

// Entry is one operation in a scenario script. Op names the operation kind;
// Value, Index and Order carry its arguments and may be omitted.
type Entry struct {
	Op    string `json:"op"              yaml:"op"`
	Value int64  `json:"value,omitempty" yaml:"value,omitempty"`
	Index int    `json:"index,omitempty" yaml:"index,omitempty"`
	Order string `json:"order,omitempty" yaml:"order,omitempty"`
}

// Operation converts the entry into an executable operation.
func (e Entry) Operation() (step.Operation, error) {
	kind, err := step.ParseKind(e.Op)
	if err != nil {
		return step.Operation{}, err
	}

	op := step.Operation{Kind: kind, Value: e.Value, Index: e.Index}

	if e.Order != "" {
		order, err := step.ParseOrder(e.Order)
		if err != nil {
			return step.Operation{}, err
		}

		op.Order = order
	}

	return op, nil
}

// Operations converts entries in order. Errors name the offending entry by
// its one-based position.
func Operations(entries []Entry) ([]step.Operation, error) {
	ops := make([]step.Operation, 0, len(entries))

	for idx, entry := range entries {
		op, err := entry.Operation()
		if err != nil {
			return nil, fmt.Errorf("scenario entry %d: %w", idx+1, err)
		}

		ops = append(ops, op)
	}

	return ops, nil
}

// Parse reads a YAML scenario document (a list of entries).
func Parse(data []byte) ([]step.Operation, error) {
	var entries []Entry

	err := yaml.Unmarshal(data, &entries)
	if err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	if len(entries) == 0 {
		return nil, ErrEmptyScenario
	}

	return Operations(entries)
}

// Load reads and parses a scenario file.
func Load(path string) ([]step.Operation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	ops, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ops, nil
}

// ParseOps parses a compact comma-separated operation list, e.g.
// "insert:50,insert:25,delete:50" or "push:7,pop,traverse:in-order".
// Errors name the offending expression by its one-based position.
func ParseOps(raw string) ([]step.Operation, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyScenario
	}

	var ops []step.Operation

	idx := 0

	for expr := range strings.SplitSeq(raw, ",") {
		idx++

		op, err := step.ParseOperation(strings.TrimSpace(expr))
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", idx, err)
		}

		ops = append(ops, op)
	}

	return ops, nil
}
