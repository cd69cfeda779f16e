package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/algotrace/cmd/algotrace/commands"
	"github.com/Sumatoshi-tech/algotrace/internal/config"
	"github.com/Sumatoshi-tech/algotrace/internal/replay"
	"github.com/Sumatoshi-tech/algotrace/internal/step"
)

// executeRun runs the run command with args and returns stdout, stderr and
// the execution error.
func executeRun(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := commands.NewRunCommand()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestRunCommand_OpsFlag(t *testing.T) {
	t.Parallel()

	out, _, err := executeRun(t,
		"--structure", "stack",
		"--ops", "push:1,push:2,pop",
		"--format", "json",
	)

	require.NoError(t, err)
	assert.Contains(t, out, `"stack"`)
	assert.Contains(t, out, `"traces"`)
}

func TestRunCommand_ScenarioFlag(t *testing.T) {
	t.Parallel()

	scenarioPath := filepath.Join(t.TempDir(), "ops.yaml")
	doc := []byte("- op: insert\n  value: 50\n- op: insert\n  value: 25\n")

	require.NoError(t, os.WriteFile(scenarioPath, doc, 0o600))

	out, _, err := executeRun(t,
		"--structure", "rbtree",
		"--scenario", scenarioPath,
		"--format", "text",
		"--color", "never",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "rbtree")
	assert.Contains(t, out, "operations,")
}

func TestRunCommand_NoOperations(t *testing.T) {
	t.Parallel()

	_, _, err := executeRun(t, "--structure", "stack")

	require.ErrorIs(t, err, commands.ErrNoOperations)
}

func TestRunCommand_OpsConflict(t *testing.T) {
	t.Parallel()

	scenarioPath := filepath.Join(t.TempDir(), "ops.yaml")
	require.NoError(t, os.WriteFile(scenarioPath, []byte("- op: pop\n"), 0o600))

	_, _, err := executeRun(t,
		"--structure", "stack",
		"--ops", "push:1",
		"--scenario", scenarioPath,
	)

	require.ErrorIs(t, err, commands.ErrOpsConflict)
}

func TestRunCommand_UnknownStructure(t *testing.T) {
	t.Parallel()

	_, _, err := executeRun(t,
		"--structure", "fibheap",
		"--ops", "push:1",
	)

	require.ErrorIs(t, err, config.ErrInvalidStructure)
}

func TestRunCommand_BadOpsExpression(t *testing.T) {
	t.Parallel()

	_, _, err := executeRun(t,
		"--structure", "stack",
		"--ops", "levitate:1",
	)

	require.ErrorIs(t, err, step.ErrUnknownOperation)
}

func TestRunCommand_RecordWritesReadableFile(t *testing.T) {
	t.Parallel()

	recordPath := filepath.Join(t.TempDir(), "out"+replay.Extension)

	_, errOut, err := executeRun(t,
		"--structure", "queue",
		"--ops", "enqueue:1,enqueue:2,dequeue",
		"--format", "json",
		"--record", recordPath,
	)

	require.NoError(t, err)
	assert.Contains(t, errOut, "recording written to")

	rec, err := replay.Load(recordPath)
	require.NoError(t, err)
	assert.Equal(t, "queue", rec.Structure)
	assert.Len(t, rec.Traces, 3)
}

func TestRunCommand_ConfigFile(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "algotrace.yaml")
	doc := []byte("structure: stack\nformat: json\ncapacity: 4\n")

	require.NoError(t, os.WriteFile(configPath, doc, 0o600))

	out, _, err := executeRun(t,
		"--config", configPath,
		"--ops", "push:7",
	)

	require.NoError(t, err)
	assert.Contains(t, out, `"stack"`)
}

func TestRunCommand_FlagOverridesConfig(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "algotrace.yaml")
	doc := []byte("structure: stack\nformat: json\n")

	require.NoError(t, os.WriteFile(configPath, doc, 0o600))

	out, _, err := executeRun(t,
		"--config", configPath,
		"--structure", "queue",
		"--ops", "enqueue:7",
	)

	require.NoError(t, err)
	assert.Contains(t, out, `"queue"`)
}

func TestRunCommand_Diagnostics(t *testing.T) {
	t.Parallel()

	_, errOut, err := executeRun(t,
		"--structure", "stack",
		"--ops", "push:1",
		"--format", "json",
		"--diagnostics", "127.0.0.1:0",
	)

	require.NoError(t, err)
	assert.Contains(t, errOut, "diagnostics listening on")
}
