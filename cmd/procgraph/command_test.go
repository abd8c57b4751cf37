package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const definition = `id: simple
elements:
  start: startEvent
  task: {type: serviceTask, taskType: foo, taskQueueId: 3}
  end: endEvent
flows:
  - {source: start, target: task}
  - {source: task, target: end}
`

func run(t *testing.T, args ...string) (string, error) {
	out := &bytes.Buffer{}
	cmd := newRootCommand(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	definitionPath := filepath.Join(dir, "simple.yaml")
	require.NoError(t, os.WriteFile(definitionPath, []byte(definition), 0o644))
	graphPath := filepath.Join(dir, "simple.graph")

	output, err := run(t, "compile", definitionPath, "--id", "42", "-o", graphPath)
	require.NoError(t, err)
	assert.Contains(t, output, "simple: 6 nodes")

	output, err = run(t, "inspect", graphPath)
	require.NoError(t, err)
	assert.Contains(t, output, "process simple numericId=42 initial=2 nodes=6")
	assert.Contains(t, output, "taskType=foo queue=3")

	repository := filepath.Join(dir, "repo")
	output, err = run(t, "deploy", definitionPath, "--repository", repository)
	require.NoError(t, err)
	assert.Contains(t, output, "simple 1/1")
	output, err = run(t, "deploy", definitionPath, "--repository", repository)
	require.NoError(t, err)
	assert.Contains(t, output, "simple 1/1")

	_, err = run(t, "inspect", definitionPath)
	assert.Error(t, err)
	_, err = run(t, "compile")
	assert.Error(t, err)
}

func TestCommands_TraceFile(t *testing.T) {
	dir := t.TempDir()
	definitionPath := filepath.Join(dir, "simple.yaml")
	require.NoError(t, os.WriteFile(definitionPath, []byte(definition), 0o644))

	_, err := run(t, "compile", definitionPath, "--trace-file", filepath.Join(dir, "missing", "trace.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to init tracing")
}
