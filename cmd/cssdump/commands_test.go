package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigman78/cssdump/internal/cssdump"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0600))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cssdump dev (commit unknown, built unknown)\n", out)
}

func TestRewriteCommand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/css/app.css", `a{background:url(../img/a.png)}.b{background:url(/logo.svg)}`)
	writeFile(t, root, "src/img/a.png", "png")

	out, err := execute(t, "rewrite",
		"--log-level", "error",
		"--project-root", root,
		"--source-root", "src",
		"--source-url", "https://static.example.com/assets",
		"--source", "css/app.css",
		"--target", "app.css")
	require.NoError(t, err)

	name := cssdump.HashNamer{}.AssetName("src/img/a.png")
	assert.Equal(t,
		`a{background:url(../img/`+name+`_a.png)}.b{background:url(https://static.example.com/logo.svg)}`,
		out)

	copied, err := os.ReadFile(filepath.Join(root, "web", "img", name+"_a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(copied))

	_, err = os.Stat(filepath.Join(root, "web", "app.css"))
	assert.True(t, os.IsNotExist(err), "rewrite prints the stylesheet without writing it")
}

func TestDumpCommand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/css/app.css", `a{background:url(../img/a.png)}`)
	writeFile(t, root, "src/img/a.png", "png")
	writeFile(t, root, "cssdump.yaml", `
publish_dir: public
stylesheets:
  - source_root: src
    source: css/app.css
    target: app.css
`)

	_, err := execute(t, "dump",
		"--config", filepath.Join(root, "cssdump.yaml"),
		"--project-root", root,
		"--log-level", "error",
		"--manifest", "assets.yaml",
		"--quiet")
	require.NoError(t, err)

	name := cssdump.HashNamer{}.AssetName("src/img/a.png")
	css, err := os.ReadFile(filepath.Join(root, "public", "app.css"))
	require.NoError(t, err)
	assert.Equal(t, `a{background:url(../img/`+name+`_a.png)}`, string(css))

	manifest, err := os.ReadFile(filepath.Join(root, "assets.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "destination: "+filepath.ToSlash(filepath.Join(root, "public", "img", name+"_a.png")))
}

func TestDumpCommandReportsFailures(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "cssdump.yaml", `
stylesheets:
  - source: missing.css
    target: missing.css.out
`)

	_, err := execute(t, "dump",
		"--config", filepath.Join(root, "cssdump.yaml"),
		"--project-root", root,
		"--log-level", "error",
		"--quiet")
	assert.ErrorContains(t, err, "1 stylesheet(s) failed")
}
