package assets

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"wavescene/internal/utils"
)

// ErrEntryNotFound is returned when a package has no entry with the requested name.
var ErrEntryNotFound = errors.New("package entry not found")

type FileEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// PkgSource serves assets out of a scene package: a length-prefixed version
// string, an entry count, then name/offset/size triples followed by the data
// block the offsets are relative to.
type PkgSource struct {
	Version   string
	data      []byte
	entries   map[string]FileEntry
	dataStart int64
}

// pkgEntryHeader is the smallest entry record: name length, offset, size.
const pkgEntryHeader = 12

func readPkgString(r *bytes.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if int64(size) > int64(r.Len()) {
		return "", fmt.Errorf("string length %d exceeds remaining %d bytes", size, r.Len())
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// OpenPkg reads and indexes the package at pkgPath.
func OpenPkg(pkgPath string) (*PkgSource, error) {
	utils.Debug("Unpacker: Opening package %s", pkgPath)
	data, err := os.ReadFile(pkgPath)
	if err != nil {
		return nil, err
	}
	pkg, err := ParsePkg(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pkgPath, err)
	}
	return pkg, nil
}

// ParsePkg indexes an in-memory package.
func ParsePkg(data []byte) (*PkgSource, error) {
	r := bytes.NewReader(data)

	version, err := readPkgString(r)
	if err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	utils.Debug("Unpacker: Package Version: %s", version)

	var fileCount uint32
	if err := binary.Read(r, binary.LittleEndian, &fileCount); err != nil {
		return nil, fmt.Errorf("read entry count: %w", err)
	}
	utils.Debug("Unpacker: File Count: %d", fileCount)
	if int64(fileCount) > int64(r.Len()/pkgEntryHeader) {
		return nil, fmt.Errorf("entry count %d exceeds remaining %d bytes", fileCount, r.Len())
	}

	entries := make(map[string]FileEntry, fileCount)
	for i := uint32(0); i < fileCount; i++ {
		name, err := readPkgString(r)
		if err != nil {
			return nil, fmt.Errorf("read entry %d name: %w", i, err)
		}
		var offset, size uint32
		if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
			return nil, fmt.Errorf("read entry %s offset: %w", name, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, fmt.Errorf("read entry %s size: %w", name, err)
		}
		entries[cleanEntryName(name)] = FileEntry{Name: name, Offset: offset, Size: size}
	}

	dataStart, _ := r.Seek(0, io.SeekCurrent)
	for _, entry := range entries {
		end := dataStart + int64(entry.Offset) + int64(entry.Size)
		if end > int64(len(data)) {
			return nil, fmt.Errorf("entry %s overruns package (%d > %d)", entry.Name, end, len(data))
		}
	}

	return &PkgSource{
		Version:   version,
		data:      data,
		entries:   entries,
		dataStart: dataStart,
	}, nil
}

func cleanEntryName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.TrimPrefix(path.Clean(name), "/")
}

// Entries lists the package contents in no particular order.
func (p *PkgSource) Entries() []FileEntry {
	out := make([]FileEntry, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e)
	}
	return out
}

func (p *PkgSource) ReadFile(name string) ([]byte, error) {
	entry, ok := p.entries[cleanEntryName(name)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrEntryNotFound)
	}
	start := p.dataStart + int64(entry.Offset)
	out := make([]byte, entry.Size)
	copy(out, p.data[start:start+int64(entry.Size)])
	return out, nil
}
