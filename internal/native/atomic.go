package native

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// atomicWrite writes data next to path under a unique name and renames it
// into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp := stagingPath(dir)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

func stagingPath(dir string) string {
	return filepath.Join(dir, "."+uuid.NewString()+".partial")
}
