// Package splitter slices an RPM into its four structural sections
// and writes each one to disk as an independent blob.
package splitter

import (
	"fmt"
	"path/filepath"

	"github.com/ralt/rpmtool/internal/models"
	"github.com/ralt/rpmtool/internal/utils"
	"github.com/sirupsen/logrus"
)

// SectionNames lists the section file names in on-disk order.
// Concatenating the four files in this order reconstructs the
// original package byte-for-byte.
var SectionNames = [4]string{"lead", "sig_header", "header", "payload"}

// Sections validates the offsets against data and returns the four
// section slices in on-disk order. The slices alias data; nothing is
// copied. A violated ordering or bounds invariant yields a Format
// error before any slicing happens.
func Sections(data []byte, offsets models.SegmentOffsets) ([4][]byte, error) {
	if err := validate(data, offsets); err != nil {
		return [4][]byte{}, err
	}

	return [4][]byte{
		data[offsets.Lead:offsets.SignatureHeader],
		data[offsets.SignatureHeader:offsets.Header],
		data[offsets.Header:offsets.Payload],
		data[offsets.Payload:],
	}, nil
}

// Split writes the four sections of data under dest, creating dest
// and its parents when absent. Pre-existing section files are
// overwritten without warning. On a write failure the sections
// already written stay on disk but the operation reports failure.
func Split(data []byte, offsets models.SegmentOffsets, dest string) error {
	sections, err := Sections(data, offsets)
	if err != nil {
		return err
	}

	if err := utils.EnsureDir(dest); err != nil {
		return &models.ToolError{
			Type: models.ErrFileOp,
			Path: dest,
			Err:  fmt.Errorf("failed to create destination: %w", err),
		}
	}

	for i, name := range SectionNames {
		path := filepath.Join(dest, name)
		if err := utils.WriteFile(path, sections[i], 0644); err != nil {
			return &models.ToolError{
				Type: models.ErrFileOp,
				Path: path,
				Err:  fmt.Errorf("failed to write section: %w", err),
			}
		}
		logrus.Debugf("Wrote %s section: %d bytes", name, len(sections[i]))
	}

	return nil
}

func validate(data []byte, offsets models.SegmentOffsets) error {
	ordered := 0 <= offsets.Lead &&
		offsets.Lead <= offsets.SignatureHeader &&
		offsets.SignatureHeader <= offsets.Header &&
		offsets.Header <= offsets.Payload &&
		offsets.Payload <= len(data)

	if !ordered {
		return &models.ToolError{
			Type: models.ErrFormat,
			Err: fmt.Errorf("segment offsets %d/%d/%d/%d violate ordering or exceed package size %d",
				offsets.Lead, offsets.SignatureHeader, offsets.Header, offsets.Payload, len(data)),
		}
	}
	return nil
}
