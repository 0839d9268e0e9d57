package tuning

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var TuningFS embed.FS

// DefaultDir is the on-disk override directory checked before the embedded copies.
const DefaultDir = "tuning"

var overrideDir = DefaultDir

// SetDir changes the override directory. An empty dir disables disk overrides.
func SetDir(dir string) {
	overrideDir = dir
}

// Dir returns the current override directory.
func Dir() string {
	return overrideDir
}

func Load(name string) ([]byte, error) {
	clean := cleanSpecPath(name)
	if overrideDir != "" {
		if data, err := os.ReadFile(diskPath(clean)); err == nil {
			return data, nil
		}
	}
	return TuningFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if overrideDir != "" {
		if data, err := os.ReadFile(diskPath(clean)); err == nil {
			return data, nil
		}
	}
	return ScriptsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	if overrideDir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(diskPath(cleanSpecPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanSpecPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "tuning/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "tuning/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPath(clean string) string {
	return filepath.Join(overrideDir, filepath.FromSlash(clean))
}
