package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyStatic_SkipsDotfiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"robots.txt":        "User-agent: *",
		"img/logo.svg":      "<svg/>",
		".gitkeep":          "",
		"img/.DS_Store":     "junk",
		".git/config":       "[core]",
		"fonts/inter.woff2": "font",
	})

	n, err := copyStatic(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.FileExists(t, filepath.Join(dst, "robots.txt"))
	assert.FileExists(t, filepath.Join(dst, "img", "logo.svg"))
	assert.FileExists(t, filepath.Join(dst, "fonts", "inter.woff2"))
	assert.NoFileExists(t, filepath.Join(dst, ".gitkeep"))
	assert.NoFileExists(t, filepath.Join(dst, "img", ".DS_Store"))
	assert.NoDirExists(t, filepath.Join(dst, ".git"))
}

func TestCopyStatic_KeepsMode(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	script := filepath.Join(src, "sw.js")
	require.NoError(t, os.WriteFile(script, []byte("self.addEventListener('fetch', () => {})"), 0o755))

	_, err := copyStatic(src, dst)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dst, "sw.js"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	data, err := os.ReadFile(filepath.Join(dst, "sw.js"))
	require.NoError(t, err)
	assert.Equal(t, "self.addEventListener('fetch', () => {})", string(data))
}

func TestBuild_GeneratedDataWinsOverStatic(t *testing.T) {
	cfg := testConfig(t)
	writeTree(t, cfg.StaticDir, map[string]string{"posts.json": "stale"})

	_, err := Build(cfg, false)
	require.NoError(t, err)

	var listing []map[string]any
	readJSON(t, filepath.Join(cfg.OutputDir, "posts.json"), &listing)
	assert.Len(t, listing, 2)
}
