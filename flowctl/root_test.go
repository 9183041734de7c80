package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meikuraledutech/flow"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FLOW_CONFIG", "")
	t.Setenv("FLOW_STORE", "file")
	t.Setenv("FLOW_STORE_DIR", filepath.Join(dir, "store"))
	t.Setenv("FLOW_LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeSnapshot(t *testing.T, dir string, g flow.Graph) string {
	t.Helper()
	b, err := flow.EncodeSnapshot(g)
	require.NoError(t, err)
	path := filepath.Join(dir, "flow.json")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	return path
}

func TestImportExportReset(t *testing.T) {
	dir := setupEnv(t)
	path := writeSnapshot(t, dir, flow.WelcomeGraph())

	out, err := run(t, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 4 nodes, 3 edges")

	out, err = run(t, "export")
	require.NoError(t, err)
	g, err := flow.DecodeSnapshot([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, flow.WelcomeGraph(), *g)

	out, err = run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "entry point node_0")

	_, err = run(t, "reset")
	require.NoError(t, err)
	_, err = run(t, "export")
	assert.Error(t, err)
}

func TestImport_RejectsAmbiguousFlowUnlessForced(t *testing.T) {
	dir := setupEnv(t)
	g := flow.WelcomeGraph()
	g.Edges = g.Edges[:1]
	path := writeSnapshot(t, dir, g)

	_, err := run(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty target handle")

	_, err = run(t, "import", path)
	require.Error(t, err)

	_, err = run(t, "import", "--force", path)
	require.NoError(t, err)
}

func TestValidate_MalformedFile(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes":[]}`), 0o644))

	_, err := run(t, "validate", path)
	assert.ErrorIs(t, err, flow.ErrMalformedSnapshot)
}

func TestTheme(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	out, err = run(t, "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	out, err = run(t, "theme", "light")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	_, err = run(t, "theme", "sepia")
	assert.ErrorIs(t, err, flow.ErrInvalidTheme)
}

func TestRun_ClosesStoreWhenCommandFails(t *testing.T) {
	closed := 0
	e := &env{close: func() { closed++ }, logger: zap.NewNop()}

	boom := errors.New("boom")
	err := e.run(func(*cobra.Command, []string) error { return boom })(&cobra.Command{}, nil)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, closed)

	e.finish()
	assert.Equal(t, 1, closed)
}

func TestRun_ClosesStoreOnSuccess(t *testing.T) {
	closed := false
	e := &env{close: func() { closed = true }, logger: zap.NewNop()}

	err := e.run(func(*cobra.Command, []string) error { return nil })(&cobra.Command{}, nil)

	require.NoError(t, err)
	assert.True(t, closed)
}
