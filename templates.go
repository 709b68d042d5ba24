package lvglgen

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-lvglgen/pkg/emit"
)

// EmbeddedTemplates exposes the built-in artifact templates so callers can
// reuse or extend them without importing the emit package directly.
func EmbeddedTemplates() fs.FS {
	return emit.TemplatesFS()
}

// ExportTemplates copies the built-in templates into dir, the starting point
// for a --template-dir override. Existing files are left untouched unless
// overwrite is set.
func ExportTemplates(dir string, overwrite bool) ([]string, error) {
	fsys := EmbeddedTemplates()
	var written []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if !overwrite {
			if _, err := os.Stat(target); err == nil {
				return nil
			}
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("lvglgen: export templates: %w", err)
	}
	return written, nil
}
