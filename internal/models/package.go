package models

import "fmt"

// PackageIdentity holds the fields identifying one RPM package
type PackageIdentity struct {
	Name    string
	Epoch   int64 // 0 when the package carries no epoch tag
	Version string
	Release string
	Arch    string
}

// NEVRA returns the canonical name-epoch:version-release.arch label
// for the package. It is used as the default destination directory
// name for split and extract.
func (id PackageIdentity) NEVRA() string {
	return fmt.Sprintf("%s-%d:%s-%s.%s", id.Name, id.Epoch, id.Version, id.Release, id.Arch)
}

// SegmentOffsets marks the byte boundaries of the four structural
// sections of an RPM: lead, signature header, header and payload.
// The payload runs to end-of-file, so it has no end offset.
//
// Invariant: Lead <= SignatureHeader <= Header <= Payload <= file size.
type SegmentOffsets struct {
	Lead            int
	SignatureHeader int
	Header          int
	Payload         int
}

// FileRecord describes one file installed by a package
type FileRecord struct {
	Path     string
	Size     int64
	Linkname string // non-empty for symlinks
}
