// Package rpmfile opens RPM packages and exposes the metadata the
// inspection commands need: identity fields, segment offsets, the
// installed-file list and payload extraction. Header and signature
// parsing is delegated to go-rpmutils; this package only reads the
// section intro records needed to locate the segment boundaries.
package rpmfile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ralt/rpmtool/internal/models"
	"github.com/ralt/rpmtool/internal/utils"
	"github.com/sassoftware/go-rpmutils"
	"github.com/sirupsen/logrus"
)

// RPM packages start with 0xED 0xAB 0xEE 0xDB
var rpmMagic = []byte{0xED, 0xAB, 0xEE, 0xDB}

// Package is an opened RPM: its raw bytes plus the parsed headers
type Package struct {
	path     string
	data     []byte
	rpm      *rpmutils.Rpm
	identity models.PackageIdentity
	offsets  models.SegmentOffsets
}

// Open reads the package at path into memory and parses its headers.
// Files that do not start with the RPM lead magic, or whose header
// sections are malformed, fail with a PackageParse error.
func Open(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.ToolError{Type: models.ErrFileOp, Path: path, Err: err}
	}

	if !bytes.HasPrefix(data, rpmMagic) {
		return nil, &models.ToolError{
			Type: models.ErrPackageParse,
			Path: path,
			Err:  fmt.Errorf("not an RPM package (bad lead magic)"),
		}
	}

	offsets, err := parseSegmentOffsets(data)
	if err != nil {
		return nil, &models.ToolError{Type: models.ErrPackageParse, Path: path, Err: err}
	}

	rpm, err := rpmutils.ReadRpm(bytes.NewReader(data))
	if err != nil {
		return nil, &models.ToolError{
			Type: models.ErrPackageParse,
			Path: path,
			Err:  fmt.Errorf("failed to read RPM headers: %w", err),
		}
	}

	identity, err := readIdentity(rpm)
	if err != nil {
		return nil, &models.ToolError{Type: models.ErrPackageParse, Path: path, Err: err}
	}

	logrus.Debugf("Parsed %s: %s (%d bytes, sha256=%s)",
		path, identity.NEVRA(), len(data), utils.SHA256Sum(data))

	return &Package{
		path:     path,
		data:     data,
		rpm:      rpm,
		identity: identity,
		offsets:  offsets,
	}, nil
}

// Data returns the package's raw bytes
func (p *Package) Data() []byte {
	return p.data
}

// Identity returns the package's identity fields
func (p *Package) Identity() models.PackageIdentity {
	return p.identity
}

// SegmentOffsets returns the section boundaries within Data
func (p *Package) SegmentOffsets() models.SegmentOffsets {
	return p.offsets
}

// Files returns the installed-file records in header order
func (p *Package) Files() ([]models.FileRecord, error) {
	infos, err := p.rpm.Header.GetFiles()
	if err != nil {
		return nil, &models.ToolError{
			Type: models.ErrPackageParse,
			Path: p.path,
			Err:  fmt.Errorf("failed to read file records: %w", err),
		}
	}

	records := make([]models.FileRecord, 0, len(infos))
	for _, info := range infos {
		records = append(records, models.FileRecord{
			Path:     info.Name(),
			Size:     info.Size(),
			Linkname: info.Linkname(),
		})
	}
	return records, nil
}

// Extract expands the payload archive under dest, creating it if
// necessary. The payload can only be consumed once per Open.
func (p *Package) Extract(dest string) error {
	if err := utils.EnsureDir(dest); err != nil {
		return &models.ToolError{
			Type: models.ErrFileOp,
			Path: dest,
			Err:  fmt.Errorf("failed to create destination: %w", err),
		}
	}

	if err := p.rpm.ExpandPayload(dest); err != nil {
		return &models.ToolError{
			Type: models.ErrFileOp,
			Path: dest,
			Err:  fmt.Errorf("failed to expand payload: %w", err),
		}
	}
	return nil
}

// readIdentity pulls the identity tags out of the main header. Name,
// version, release and arch are required; a missing epoch defaults
// to 0, matching how rpm treats epoch-less packages.
func readIdentity(rpm *rpmutils.Rpm) (models.PackageIdentity, error) {
	identity := models.PackageIdentity{
		Name:    getStringTag(rpm, rpmutils.NAME),
		Epoch:   getIntTag(rpm, rpmutils.EPOCH),
		Version: getStringTag(rpm, rpmutils.VERSION),
		Release: getStringTag(rpm, rpmutils.RELEASE),
		Arch:    getStringTag(rpm, rpmutils.ARCH),
	}

	if identity.Name == "" || identity.Version == "" || identity.Release == "" || identity.Arch == "" {
		return models.PackageIdentity{}, fmt.Errorf("missing required identity tags (got %q)", identity.NEVRA())
	}
	return identity, nil
}

// getStringTag safely gets a string tag from RPM
func getStringTag(rpm *rpmutils.Rpm, tag int) string {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return ""
	}

	// Handle different types that might be returned
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}

	return ""
}

// getIntTag safely gets an integer tag from RPM
func getIntTag(rpm *rpmutils.Rpm, tag int) int64 {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return 0
	}

	// Handle different types that might be returned
	switch v := val.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint32:
		return int64(v)
	case []int:
		if len(v) > 0 {
			return int64(v[0])
		}
	case []int32:
		if len(v) > 0 {
			return int64(v[0])
		}
	case []int64:
		if len(v) > 0 {
			return v[0]
		}
	case []uint32:
		if len(v) > 0 {
			return int64(v[0])
		}
	case []uint64:
		if len(v) > 0 {
			return int64(v[0])
		}
	}

	return 0
}
