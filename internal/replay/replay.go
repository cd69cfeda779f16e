// Package replay implements trace recordings: capturing an operation run
// against a structure into a compressed .atrace document, loading it back
// with schema validation, and re-executing it to detect narration drift.
package replay

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/algotrace/internal/catalog"
	"github.com/Sumatoshi-tech/algotrace/internal/step"
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

// Extension is the conventional file suffix for recordings.
const Extension = ".atrace"

// ErrInvalidRecording reports a recording document that fails schema
// validation or is internally inconsistent.
var ErrInvalidRecording = errors.New("invalid recording")

// Stats aggregates a recording for reporting and plotting.
type Stats struct {
	TotalSteps int   `json:"total_steps"          yaml:"total_steps"`
	SizeAfter  []int `json:"size_after,omitempty" yaml:"size_after,omitempty"`
}

// Recording is the persisted form of one traced run: the structure it ran
// against, every operation in order, the steps each produced, and the final
// drawable projection.
type Recording struct {
	Structure       string           `json:"structure"        yaml:"structure"`
	Capacity        int              `json:"capacity"         yaml:"capacity"`
	Operations      []step.Operation `json:"operations"       yaml:"operations"`
	Traces          [][]step.Step    `json:"traces"           yaml:"traces"`
	FinalProjection viz.RenderState  `json:"final_projection" yaml:"final_projection"`
	Stats           Stats            `json:"stats"            yaml:"stats"`
}

// Record executes ops in order against a fresh structure and captures the
// complete trace set. Any operation error aborts the recording.
func Record(structure string, capacity int, ops []step.Operation) (*Recording, error) {
	registry := catalog.NewRegistry(capacity)

	target, err := registry.New(structure)
	if err != nil {
		return nil, err
	}

	rec := &Recording{
		Structure:  structure,
		Capacity:   capacity,
		Operations: make([]step.Operation, 0, len(ops)),
		Traces:     make([][]step.Step, 0, len(ops)),
	}

	for _, op := range ops {
		steps, err := target.Execute(op)
		if err != nil {
			return nil, fmt.Errorf("executing %s: %w", op, err)
		}

		if steps == nil {
			steps = []step.Step{}
		}

		rec.Operations = append(rec.Operations, op)
		rec.Traces = append(rec.Traces, steps)
		rec.Stats.TotalSteps += len(steps)
		rec.Stats.SizeAfter = append(rec.Stats.SizeAfter, target.Size())
	}

	rec.FinalProjection = target.Render()
	if rec.FinalProjection.Elements == nil {
		rec.FinalProjection.Elements = []viz.Element{}
	}

	return rec, nil
}
