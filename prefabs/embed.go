package prefabs

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

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(filepath.Join("prefabs", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

//go:embed *.yaml
var SpecsFS embed.FS

// Load returns the named spec, preferring a file on disk under prefabs/ over
// the embedded copy so edits take effect without rebuilding.
func Load(name string) ([]byte, error) {
	clean := cleanSpecPath(name)
	if data, err := os.ReadFile(diskSpecPath(clean)); err == nil {
		return data, nil
	}
	return SpecsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanSpecPath(name)
	info, err := os.Stat(diskSpecPath(clean))
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
	return strings.TrimPrefix(s, "prefabs/")
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskSpecPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
