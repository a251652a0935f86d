package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/admin/sqlloader/internal/dataset"
	"github.com/admin/sqlloader/internal/db"
	"github.com/admin/sqlloader/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvider struct {
	configs  []dataset.Config
	executed []string
}

func (p *recordingProvider) Connect(_ context.Context, cfg dataset.Config) (db.Conn, error) {
	p.configs = append(p.configs, cfg)
	return &recordingConn{p: p}, nil
}

type recordingConn struct {
	p *recordingProvider
}

func (c *recordingConn) Exec(_ context.Context, sql string) (string, error) {
	c.p.executed = append(c.p.executed, sql)
	return "OK", nil
}

func (c *recordingConn) Close(context.Context) error { return nil }

func setupDatasets(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"demo/config.json":        `{"dbname":"testdb","port":6000}`,
		"demo/001_create.sql":     "CREATE TABLE t(x int);",
		"demo/sub/002_insert.sql": "INSERT INTO t VALUES (1);",
		"demo/reset.sql":          "DROP TABLE t;",
		"noreset/config.json":     `{"dbname":"other"}`,
		"noreset/001.sql":         "SELECT 1;",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func run(t *testing.T, p db.Provider, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(p)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMissingArguments(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, "You must specify one of list, load or reset."},
		{[]string{"migrate"}, "You must specify one of list, load or reset."},
		{[]string{"load"}, "You must specify a dataset to load"},
		{[]string{"reset"}, "You must specify a dataset to reset"},
		{[]string{"reset", "-d", "x"}, "You must specify a dataset to reset"},
	}

	for _, tt := range tests {
		p := &recordingProvider{}
		_, err := run(t, p, tt.args...)
		require.Error(t, err, "args %v", tt.args)
		assert.EqualError(t, err, tt.want)
		assert.ErrorIs(t, err, errors.ErrMissingArgument)
		assert.Empty(t, p.configs)
	}
}

func TestHelp(t *testing.T) {
	out, err := run(t, &recordingProvider{}, "-h")
	require.NoError(t, err)
	assert.Contains(t, out, "--user")
	assert.Contains(t, out, "-W, --password")
	assert.Contains(t, out, "-d, --database")
	assert.Contains(t, out, "-p, --port")
}

func TestLoadCommand(t *testing.T) {
	root := setupDatasets(t)
	p := &recordingProvider{}

	out, err := run(t, p, "load", "demo", "--datasets", root, "-p", "7000", "-U", "alice")
	require.NoError(t, err)
	assert.Equal(t, "OK\nOK\n", out)
	assert.Equal(t, []string{"CREATE TABLE t(x int);", "INSERT INTO t VALUES (1);"}, p.executed)
	require.Len(t, p.configs, 1)
	assert.Equal(t, dataset.Config{DBName: "testdb", User: "alice", Port: 7000}, p.configs[0])
}

func TestLoadCommandByPath(t *testing.T) {
	root := setupDatasets(t)
	p := &recordingProvider{}

	_, err := run(t, p, "load", filepath.Join(root, "demo"), "-d", "override")
	require.NoError(t, err)
	require.Len(t, p.configs, 1)
	assert.Equal(t, dataset.Config{DBName: "override", User: "override", Port: 6000}, p.configs[0])
}

func TestResetCommand(t *testing.T) {
	root := setupDatasets(t)
	p := &recordingProvider{}

	_, err := run(t, p, "reset", "demo", "--datasets", root)
	require.NoError(t, err)
	assert.Equal(t, []string{"CREATE TABLE t(x int);", "INSERT INTO t VALUES (1);", "DROP TABLE t;"}, p.executed)

	p = &recordingProvider{}
	_, err = run(t, p, "reset", "noreset", "--datasets", root)
	assert.ErrorIs(t, err, errors.ErrNoResetScripts)
	assert.Empty(t, p.configs)
}

func TestLoadCommandUnknownDataset(t *testing.T) {
	_, err := run(t, &recordingProvider{}, "load", "missing", "--datasets", t.TempDir())
	assert.ErrorIs(t, err, errors.ErrIO)
}

func TestListCommand(t *testing.T) {
	root := setupDatasets(t)

	out, err := run(t, &recordingProvider{}, "list", "--datasets", root)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE t(x int);\nINSERT INTO t VALUES (1);\nDROP TABLE t;\nSELECT 1;\n", out)
}
