package native

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atomicstack/emu-settings-control/internal/model"
)

// DriverRepository manages the GPU driver packages kept in one directory.
type DriverRepository struct {
	dir string
}

// NewDriverRepository returns a repository rooted at dir.
func NewDriverRepository(dir string) *DriverRepository {
	return &DriverRepository{dir: dir}
}

// Dir returns the package directory.
func (r *DriverRepository) Dir() string {
	return r.dir
}

func isPackageName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip", ".7z":
		return true
	}
	return false
}

// List returns the valid packages sorted by title. Invalid packages are
// skipped and reported through the joined error alongside the result.
func (r *DriverRepository) List() ([]*model.Driver, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	var (
		drivers []*model.Driver
		errs    []error
	)
	for _, entry := range entries {
		if entry.IsDir() || !isPackageName(entry.Name()) {
			continue
		}
		d, err := ReadPackage(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		drivers = append(drivers, d)
	}
	sort.SliceStable(drivers, func(i, j int) bool {
		if drivers[i].Title == drivers[j].Title {
			return drivers[i].Path < drivers[j].Path
		}
		return drivers[i].Title < drivers[j].Title
	})
	return drivers, errors.Join(errs...)
}

// Install copies the package at src into the repository. A package for a
// driver with the same name, or with the same file name, is replaced and
// reported as InstallOverwrite.
func (r *DriverRepository) Install(src string) (model.InstallResult, *model.Driver, error) {
	incoming, err := ReadPackage(src)
	if err != nil {
		return model.InstallFailure, nil, err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return model.InstallFailure, nil, fmt.Errorf("create driver dir: %w", err)
	}

	dest := filepath.Join(r.dir, filepath.Base(src))
	result := model.InstallSuccess
	existing, _ := r.List()
	var replaced []string
	for _, d := range existing {
		if d.Title == incoming.Title || d.Path == dest {
			result = model.InstallOverwrite
			if d.Path != dest {
				replaced = append(replaced, d.Path)
			}
		}
	}
	if _, err := os.Stat(dest); err == nil {
		result = model.InstallOverwrite
	}

	staging := stagingPath(r.dir)
	if err := copyFile(src, staging); err != nil {
		os.Remove(staging)
		return model.InstallFailure, nil, err
	}
	if err := os.Rename(staging, dest); err != nil {
		os.Remove(staging)
		return model.InstallFailure, nil, fmt.Errorf("install %s: %w", dest, err)
	}
	for _, old := range replaced {
		if err := os.Remove(old); err != nil && !errors.Is(err, os.ErrNotExist) {
			return result, nil, fmt.Errorf("remove replaced package: %w", err)
		}
	}
	incoming.Path = dest
	return result, incoming, nil
}

// Remove deletes a package. Paths outside the repository are rejected.
func (r *DriverRepository) Remove(pkgPath string) error {
	if pkgPath == "" {
		return fmt.Errorf("remove driver: empty path")
	}
	if filepath.Dir(filepath.Clean(pkgPath)) != filepath.Clean(r.dir) {
		return fmt.Errorf("remove driver: %s is outside %s", pkgPath, r.dir)
	}
	if err := os.Remove(pkgPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove driver: %w", err)
	}
	return nil
}

// Fingerprint summarises the directory listing so pollers can detect
// changes without reading packages.
func (r *DriverRepository) Fingerprint() (string, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	h := sha1.New()
	for _, entry := range entries {
		if entry.IsDir() || !isPackageName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		fmt.Fprintf(h, "%s:%d:%d;", entry.Name(), info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
