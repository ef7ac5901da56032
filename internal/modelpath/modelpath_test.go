package modelpath

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDefaultUnderConfigDir(t *testing.T) {
	dir := t.TempDir()
	r := Resolver{ConfigDir: func() (string, error) { return dir, nil }}
	require.Equal(t, filepath.Join(dir, "models", "MintAI.gguf"), r.Default())
	require.Equal(t, r.Default(), r.Resolve(""))
	require.Equal(t, filepath.Join(dir, "models"), r.ModelsDir())
}

func TestCustomModelFile(t *testing.T) {
	dir := t.TempDir()
	r := WithConfigDir(dir, "other.gguf", zerolog.Nop())
	require.Equal(t, filepath.Join(dir, "models", "other.gguf"), r.Default())
}

func TestFallsBackToWorkingDir(t *testing.T) {
	r := Resolver{ConfigDir: func() (string, error) { return "", errors.New("no config dir") }}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(wd, "models", "MintAI.gguf"), r.Default())
	require.NotEmpty(t, r.Resolve(""))
}

func TestExplicitWins(t *testing.T) {
	r := Resolver{ConfigDir: func() (string, error) { return t.TempDir(), nil }}
	require.Equal(t, "/elsewhere/model.gguf", r.Resolve("/elsewhere/model.gguf"))
}

func TestStatus(t *testing.T) {
	dir := t.TempDir()
	r := Resolver{ConfigDir: func() (string, error) { return dir, nil }}

	st := r.Status("")
	require.Equal(t, r.Default(), st.Path)
	require.False(t, st.Exists)

	require.NoError(t, os.MkdirAll(r.ModelsDir(), 0o755))
	require.NoError(t, os.WriteFile(r.Default(), []byte("gguf"), 0o644))
	require.True(t, r.Status("").Exists)

	missing := filepath.Join(dir, "nope.gguf")
	st = r.Status(missing)
	require.Equal(t, missing, st.Path)
	require.False(t, st.Exists)
}
