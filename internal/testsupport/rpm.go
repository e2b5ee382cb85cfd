// Package testsupport builds minimal but structurally valid RPM
// packages for tests: a v3 lead, a signature header, a main header
// carrying identity and file tags, and a gzip-compressed newc cpio
// payload.
package testsupport

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// Header entry data types from the RPM format
const (
	typeInt16       = 3
	typeInt32       = 4
	typeString      = 6
	typeStringArray = 8
)

// Main header tags used by the generated package
const (
	tagName              = 1000
	tagVersion           = 1001
	tagRelease           = 1002
	tagEpoch             = 1003
	tagSize              = 1009
	tagOs                = 1021
	tagArch              = 1022
	tagFileSizes         = 1028
	tagFileModes         = 1030
	tagFileRdevs         = 1033
	tagFileMtimes        = 1034
	tagFileDigests       = 1035
	tagFileLinktos       = 1036
	tagFileFlags         = 1037
	tagFileUserName      = 1039
	tagFileGroupName     = 1040
	tagFileVerifyFlags   = 1045
	tagFileDevices       = 1095
	tagFileInodes        = 1096
	tagFileLangs         = 1097
	tagDirIndexes        = 1116
	tagBasenames         = 1117
	tagDirnames          = 1118
	tagPayloadFormat     = 1124
	tagPayloadCompressor = 1125
	tagPayloadFlags      = 1126

	// Signature header space
	sigTagSize = 1000
)

// RpmFile describes one regular file carried by the generated package
type RpmFile struct {
	Dir      string // directory part, with trailing slash, e.g. "/usr/bin/"
	Basename string
	Content  string
	Mode     uint16 // e.g. 0o100644
}

// Option customizes the generated package
type Option func(*rpmBuilder)

type rpmBuilder struct {
	name    string
	version string
	release string
	arch    string
	epoch   *int
	files   []RpmFile
}

// WithEpoch adds an explicit epoch tag to the header
func WithEpoch(epoch int) Option {
	return func(b *rpmBuilder) {
		b.epoch = &epoch
	}
}

// WithFiles replaces the default file set
func WithFiles(files []RpmFile) Option {
	return func(b *rpmBuilder) {
		b.files = files
	}
}

// BuildRpm writes a package named hello-1.0-1.x86_64 under dir and
// returns its path. By default it carries no epoch tag and installs
// /etc/hello.conf and /usr/bin/hello.
func BuildRpm(t testing.TB, dir string, opts ...Option) string {
	t.Helper()

	builder := &rpmBuilder{
		name:    "hello",
		version: "1.0",
		release: "1",
		arch:    "x86_64",
		files: []RpmFile{
			{Dir: "/etc/", Basename: "hello.conf", Content: "greeting=hello\n", Mode: 0o100644},
			{Dir: "/usr/bin/", Basename: "hello", Content: "#!/bin/sh\necho hello\n", Mode: 0o100755},
		},
	}
	for _, opt := range opts {
		opt(builder)
	}

	payload := builder.buildPayload(t)
	header := builder.buildHeader()
	signature := buildSignatureHeader(len(header) + len(payload))
	lead := builder.buildLead()

	data := bytes.Join([][]byte{lead, signature, header, payload}, nil)

	path := filepath.Join(dir, fmt.Sprintf("%s-%s-%s.%s.rpm",
		builder.name, builder.version, builder.release, builder.arch))
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write test rpm: %v", err)
	}
	return path
}

// buildLead emits the fixed 96-byte lead: magic, version 3.0, binary
// package type, the truncated package name and signature type 5.
func (b *rpmBuilder) buildLead() []byte {
	lead := make([]byte, 96)
	copy(lead, []byte{0xED, 0xAB, 0xEE, 0xDB})
	lead[4] = 3 // major
	lead[5] = 0 // minor
	binary.BigEndian.PutUint16(lead[6:], 0) // binary package
	binary.BigEndian.PutUint16(lead[8:], 1) // arch
	name := fmt.Sprintf("%s-%s-%s", b.name, b.version, b.release)
	if len(name) > 65 {
		name = name[:65]
	}
	copy(lead[10:], name)
	binary.BigEndian.PutUint16(lead[76:], 1) // os
	binary.BigEndian.PutUint16(lead[78:], 5) // header-style signature
	return lead
}

func (b *rpmBuilder) buildHeader() []byte {
	dirs, dirIndexes := b.dirTable()

	var (
		basenames   []string
		sizes       []uint32
		modes       []uint16
		rdevs       = make([]uint16, len(b.files))
		mtimes      []uint32
		digests     = make([]string, len(b.files))
		linktos     = make([]string, len(b.files))
		flags       = make([]uint32, len(b.files))
		users       []string
		groups      []string
		verifyFlags []uint32
		devices     []uint32
		inodes      []uint32
		langs       = make([]string, len(b.files))
		totalSize   uint32
	)
	for i, file := range b.files {
		basenames = append(basenames, file.Basename)
		sizes = append(sizes, uint32(len(file.Content)))
		modes = append(modes, file.Mode)
		mtimes = append(mtimes, 1700000000)
		users = append(users, "root")
		groups = append(groups, "root")
		verifyFlags = append(verifyFlags, 0xffffffff)
		devices = append(devices, 1)
		inodes = append(inodes, uint32(i+1))
		totalSize += uint32(len(file.Content))
	}

	entries := []headerEntry{
		stringEntry(tagName, b.name),
		stringEntry(tagVersion, b.version),
		stringEntry(tagRelease, b.release),
		int32Entry(tagSize, []uint32{totalSize}),
		stringEntry(tagOs, "linux"),
		stringEntry(tagArch, b.arch),
		int32Entry(tagFileSizes, sizes),
		int16Entry(tagFileModes, modes),
		int16Entry(tagFileRdevs, rdevs),
		int32Entry(tagFileMtimes, mtimes),
		stringArrayEntry(tagFileDigests, digests),
		stringArrayEntry(tagFileLinktos, linktos),
		int32Entry(tagFileFlags, flags),
		stringArrayEntry(tagFileUserName, users),
		stringArrayEntry(tagFileGroupName, groups),
		int32Entry(tagFileVerifyFlags, verifyFlags),
		int32Entry(tagFileDevices, devices),
		int32Entry(tagFileInodes, inodes),
		stringArrayEntry(tagFileLangs, langs),
		int32Entry(tagDirIndexes, dirIndexes),
		stringArrayEntry(tagBasenames, basenames),
		stringArrayEntry(tagDirnames, dirs),
		stringEntry(tagPayloadFormat, "cpio"),
		stringEntry(tagPayloadCompressor, "gzip"),
		stringEntry(tagPayloadFlags, "9"),
	}
	if b.epoch != nil {
		entries = append(entries, int32Entry(tagEpoch, []uint32{uint32(*b.epoch)}))
	}

	return writeHeaderSection(entries, false)
}

// dirTable returns the unique directory names (in first-use order)
// and the per-file index into that table.
func (b *rpmBuilder) dirTable() ([]string, []uint32) {
	var dirs []string
	seen := make(map[string]uint32)
	indexes := make([]uint32, len(b.files))

	for i, file := range b.files {
		idx, ok := seen[file.Dir]
		if !ok {
			idx = uint32(len(dirs))
			seen[file.Dir] = idx
			dirs = append(dirs, file.Dir)
		}
		indexes[i] = idx
	}
	return dirs, indexes
}

func buildSignatureHeader(signedSize int) []byte {
	entries := []headerEntry{
		int32Entry(sigTagSize, []uint32{uint32(signedSize)}),
	}
	return writeHeaderSection(entries, true)
}

// buildPayload produces the gzip-compressed newc cpio archive with
// directory entries ahead of the files they contain.
func (b *rpmBuilder) buildPayload(t testing.TB) []byte {
	t.Helper()

	var archive bytes.Buffer

	inode := 0
	nextInode := func() int {
		inode++
		return inode
	}

	written := make(map[string]bool)
	for _, file := range b.files {
		for _, dir := range parentDirs(file.Dir) {
			if !written[dir] {
				written[dir] = true
				writeCpioEntry(&archive, nextInode(), "."+dir, 0o040755, nil)
			}
		}
		writeCpioEntry(&archive, nextInode(), "."+file.Dir+file.Basename, uint32(file.Mode), []byte(file.Content))
	}
	writeCpioEntry(&archive, 0, "TRAILER!!!", 0, nil)

	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	if _, err := zw.Write(archive.Bytes()); err != nil {
		t.Fatalf("Failed to compress payload: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finish payload: %v", err)
	}
	return compressed.Bytes()
}

// parentDirs("/usr/bin/") returns ["/usr", "/usr/bin"]
func parentDirs(dir string) []string {
	var out []string
	for i := 1; i < len(dir); i++ {
		if dir[i] == '/' {
			out = append(out, dir[:i])
		}
	}
	return out
}

// writeCpioEntry appends one newc-format entry. Header and file data
// are both padded to 4-byte alignment.
func writeCpioEntry(buf *bytes.Buffer, inode int, name string, mode uint32, data []byte) {
	nlink := 1
	if mode&0o040000 != 0 {
		nlink = 2
	}

	fmt.Fprintf(buf, "070701%08x%08x%08x%08x%08x%08x%08x%08x%08x%08x%08x%08x%08x",
		inode,          // inode
		mode,           // mode
		0,              // uid
		0,              // gid
		nlink,          // nlink
		1700000000,     // mtime
		len(data),      // filesize
		0,              // devmajor
		0,              // devminor
		0,              // rdevmajor
		0,              // rdevminor
		len(name)+1,    // namesize, including NUL
		0)              // check
	buf.WriteString(name)
	buf.WriteByte(0)
	pad4(buf)
	buf.Write(data)
	pad4(buf)
}

func pad4(buf *bytes.Buffer) {
	if mod := buf.Len() % 4; mod != 0 {
		buf.Write(make([]byte, 4-mod))
	}
}

// headerEntry is one index entry plus its store data
type headerEntry struct {
	tag   int
	etype int
	count int
	align int
	data  []byte
}

func stringEntry(tag int, value string) headerEntry {
	return headerEntry{tag: tag, etype: typeString, count: 1, align: 1, data: append([]byte(value), 0)}
}

func stringArrayEntry(tag int, values []string) headerEntry {
	var data []byte
	for _, value := range values {
		data = append(data, value...)
		data = append(data, 0)
	}
	return headerEntry{tag: tag, etype: typeStringArray, count: len(values), align: 1, data: data}
}

func int16Entry(tag int, values []uint16) headerEntry {
	var data bytes.Buffer
	for _, value := range values {
		binary.Write(&data, binary.BigEndian, value)
	}
	return headerEntry{tag: tag, etype: typeInt16, count: len(values), align: 2, data: data.Bytes()}
}

func int32Entry(tag int, values []uint32) headerEntry {
	var data bytes.Buffer
	for _, value := range values {
		binary.Write(&data, binary.BigEndian, value)
	}
	return headerEntry{tag: tag, etype: typeInt32, count: len(values), align: 4, data: data.Bytes()}
}

// writeHeaderSection lays out a header section: intro record, index
// entries, then the store. Store data is aligned per entry type; the
// signature header additionally pads the whole section to 8 bytes.
func writeHeaderSection(entries []headerEntry, pad8 bool) []byte {
	var index, store bytes.Buffer

	for _, entry := range entries {
		if entry.align > 1 {
			if mod := store.Len() % entry.align; mod != 0 {
				store.Write(make([]byte, entry.align-mod))
			}
		}
		binary.Write(&index, binary.BigEndian, int32(entry.tag))
		binary.Write(&index, binary.BigEndian, int32(entry.etype))
		binary.Write(&index, binary.BigEndian, int32(store.Len()))
		binary.Write(&index, binary.BigEndian, int32(entry.count))
		store.Write(entry.data)
	}

	var out bytes.Buffer
	out.Write([]byte{0x8E, 0xAD, 0xE8, 0x01, 0, 0, 0, 0})
	binary.Write(&out, binary.BigEndian, uint32(len(entries)))
	binary.Write(&out, binary.BigEndian, uint32(store.Len()))
	out.Write(index.Bytes())
	out.Write(store.Bytes())

	if pad8 {
		if mod := out.Len() % 8; mod != 0 {
			out.Write(make([]byte, 8-mod))
		}
	}
	return out.Bytes()
}
