// Package modelpath resolves where the local model file lives and reports
// whether it is present. It never loads anything.
package modelpath

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"mintai/internal/common/fsutil"
	"mintai/pkg/types"
)

const (
	DefaultAppID     = "com.mintbalance.desktop"
	DefaultModelFile = "MintAI.gguf"
	ModelsSubdir     = "models"
)

// Resolver derives ModelPath values. The zero value uses the OS config
// directory, DefaultAppID and DefaultModelFile.
type Resolver struct {
	// ConfigDir returns the application config directory. Nil means
	// os.UserConfigDir joined with AppID.
	ConfigDir func() (string, error)
	AppID     string
	ModelFile string
	Log       zerolog.Logger
}

// WithConfigDir returns a Resolver rooted at a fixed directory. An empty dir
// keeps the OS default.
func WithConfigDir(dir, modelFile string, log zerolog.Logger) Resolver {
	r := Resolver{ModelFile: modelFile, Log: log}
	if dir != "" {
		r.ConfigDir = func() (string, error) { return fsutil.ExpandHome(dir) }
	}
	return r
}

func (r Resolver) appID() string {
	if r.AppID == "" {
		return DefaultAppID
	}
	return r.AppID
}

// ModelFileName is the file name of the default model.
func (r Resolver) ModelFileName() string {
	if r.ModelFile == "" {
		return DefaultModelFile
	}
	return r.ModelFile
}

// configDir falls back to the working directory when no config dir can be
// resolved; callers never see that failure.
func (r Resolver) configDir() string {
	get := r.ConfigDir
	if get == nil {
		get = func() (string, error) {
			base, err := os.UserConfigDir()
			if err != nil {
				return "", err
			}
			return filepath.Join(base, r.appID()), nil
		}
	}
	dir, err := get()
	if err == nil && dir != "" {
		return dir
	}
	r.Log.Debug().Err(err).Msg("config dir unavailable, using working directory")
	if wd, werr := os.Getwd(); werr == nil {
		return wd
	}
	return "."
}

// ModelsDir is <config dir>/models.
func (r Resolver) ModelsDir() string {
	return filepath.Join(r.configDir(), ModelsSubdir)
}

// Default is <config dir>/models/<model file>.
func (r Resolver) Default() string {
	return filepath.Join(r.ModelsDir(), r.ModelFileName())
}

// Resolve returns explicit when set (with '~' expanded), else Default.
// The result is never empty.
func (r Resolver) Resolve(explicit string) string {
	if explicit == "" {
		return r.Default()
	}
	if p, err := fsutil.ExpandHome(explicit); err == nil {
		return p
	}
	return explicit
}

// Status reports the resolved path and whether a file exists there.
func (r Resolver) Status(explicit string) types.ModelStatus {
	p := r.Resolve(explicit)
	return types.ModelStatus{Path: p, Exists: fsutil.PathExists(p)}
}
