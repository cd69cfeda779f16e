package replay

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Sumatoshi-tech/algotrace/internal/catalog"
	"github.com/Sumatoshi-tech/algotrace/internal/step"
)

// Drift is one operation whose regenerated narration no longer matches the
// recorded one. Diff holds a line diff excerpt, recorded lines prefixed
// with "-" and regenerated lines with "+".
type Drift struct {
	OperationIndex int
	Operation      step.Operation
	Diff           string
}

func (d Drift) String() string {
	return fmt.Sprintf("operation #%d (%s):\n%s", d.OperationIndex, d.Operation, d.Diff)
}

// Verify re-executes the recorded operations against a fresh structure and
// diffs each regenerated narration against the recorded one. An empty
// result means the recording replays exactly.
func Verify(rec *Recording) ([]Drift, error) {
	if len(rec.Traces) != len(rec.Operations) {
		return nil, fmt.Errorf("%w: %d operations with %d traces",
			ErrInvalidRecording, len(rec.Operations), len(rec.Traces))
	}

	registry := catalog.NewRegistry(rec.Capacity)

	target, err := registry.New(rec.Structure)
	if err != nil {
		return nil, err
	}

	var drifts []Drift

	for idx, op := range rec.Operations {
		steps, err := target.Execute(op)
		if err != nil {
			return nil, fmt.Errorf("replaying %s: %w", op, err)
		}

		diff, same := narrationDiff(narration(rec.Traces[idx]), narration(steps))
		if !same {
			drifts = append(drifts, Drift{OperationIndex: idx, Operation: op, Diff: diff})
		}
	}

	return drifts, nil
}

// narration flattens a trace into one description per line.
func narration(steps []step.Step) string {
	var sb strings.Builder

	for _, st := range steps {
		sb.WriteString(st.Description)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// narrationDiff line-diffs two narrations. The boolean reports equality.
func narrationDiff(recorded, regenerated string) (string, bool) {
	dmp := diffmatchpatch.New()

	src, dst, lines := dmp.DiffLinesToRunes(recorded, regenerated)
	diffs := dmp.DiffMainRunes(src, dst, false)

	if len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual {
		return "", true
	}

	diffs = dmp.DiffCharsToLines(diffs, lines)

	var sb strings.Builder

	for _, d := range diffs {
		var prefix string

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}

		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			sb.WriteString(prefix)
			sb.WriteByte(' ')
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}

	return sb.String(), false
}
