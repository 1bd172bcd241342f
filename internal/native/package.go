package native

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/atomicstack/emu-settings-control/internal/model"
	"github.com/bodgit/sevenzip"
)

// ErrInvalidPackage is returned for files that are not readable driver
// packages.
var ErrInvalidPackage = errors.New("invalid driver package")

const (
	metaFileName = "meta.json"
	maxMetaSize  = 64 * 1024
)

var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06}
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
)

type packageFormat int

const (
	formatUnknown packageFormat = iota
	formatZIP
	format7z
)

// driverMeta mirrors the meta.json shipped inside driver packages.
type driverMeta struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Author        string `json:"author"`
	Vendor        string `json:"vendor"`
	DriverVersion string `json:"driverVersion"`
	LibraryName   string `json:"libraryName"`
}

// archiveEntry is the common view over zip and 7z members.
type archiveEntry struct {
	name string
	open func() (io.ReadCloser, error)
}

func detectFormat(header []byte, name string) packageFormat {
	if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
		return formatZIP
	}
	if bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	}
	return formatUnknown
}

// ReadPackage opens a driver package and returns the driver it describes.
// The returned driver's Path is the package path.
func ReadPackage(pkgPath string) (*model.Driver, error) {
	f, err := os.Open(pkgPath)
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	header := make([]byte, 8)
	n, err := f.Read(header)
	f.Close()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read package header: %w", err)
	}

	switch detectFormat(header[:n], pkgPath) {
	case formatZIP:
		r, err := zip.OpenReader(pkgPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPackage, pkgPath, err)
		}
		defer r.Close()
		entries := make([]archiveEntry, 0, len(r.File))
		for _, zf := range r.File {
			if zf.FileInfo().IsDir() {
				continue
			}
			entries = append(entries, archiveEntry{name: zf.Name, open: zf.Open})
		}
		return driverFromEntries(pkgPath, entries)
	case format7z:
		r, err := sevenzip.OpenReader(pkgPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPackage, pkgPath, err)
		}
		defer r.Close()
		entries := make([]archiveEntry, 0, len(r.File))
		for _, sf := range r.File {
			if sf.FileInfo().IsDir() {
				continue
			}
			entries = append(entries, archiveEntry{name: sf.Name, open: sf.Open})
		}
		return driverFromEntries(pkgPath, entries)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported format", ErrInvalidPackage, pkgPath)
	}
}

func driverFromEntries(pkgPath string, entries []archiveEntry) (*model.Driver, error) {
	var meta *driverMeta
	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		base := path.Base(e.name)
		names[base] = struct{}{}
		if base != metaFileName || meta != nil {
			continue
		}
		m, err := readMeta(e)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPackage, pkgPath, err)
		}
		meta = m
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: %s: missing %s", ErrInvalidPackage, pkgPath, metaFileName)
	}
	if strings.TrimSpace(meta.Name) == "" {
		return nil, fmt.Errorf("%w: %s: driver name is empty", ErrInvalidPackage, pkgPath)
	}
	if meta.LibraryName != "" {
		if _, ok := names[meta.LibraryName]; !ok {
			return nil, fmt.Errorf("%w: %s: library %s not found", ErrInvalidPackage, pkgPath, meta.LibraryName)
		}
	}
	return &model.Driver{
		Title:       meta.Name,
		Version:     meta.DriverVersion,
		Description: meta.Description,
		Author:      meta.Author,
		Vendor:      meta.Vendor,
		Library:     meta.LibraryName,
		Path:        pkgPath,
	}, nil
}

func readMeta(e archiveEntry) (*driverMeta, error) {
	rc, err := e.open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	raw, err := io.ReadAll(io.LimitReader(rc, maxMetaSize+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > maxMetaSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", metaFileName, maxMetaSize)
	}
	var meta driverMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", metaFileName, err)
	}
	return &meta, nil
}
