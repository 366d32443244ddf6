// Package archive saves a map[int]string to a file and restores it.
//
// Every archive is wrapped in an envelope carrying a signature and a format
// version, so a file written by something else is rejected instead of being
// decoded into garbage. Three encodings are available: a compact binary one
// (CBOR), a text one (YAML) and an XML one.
package archive

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/libtour/libtour/pkg/errors"
	"github.com/libtour/libtour/pkg/logging"
)

const (
	// Signature identifies libtour archives.
	Signature = "libtour::archive"
	// Version is the newest envelope version this package reads and writes.
	Version = 1
)

// Format names.
const (
	Binary = "binary"
	Text   = "text"
	XML    = "xml"
)

// Formats lists every supported format.
func Formats() []string {
	return []string{Binary, Text, XML}
}

type envelope struct {
	Signature string         `cbor:"signature" yaml:"signature"`
	Version   int            `cbor:"version" yaml:"version"`
	Entries   map[int]string `cbor:"entries" yaml:"entries"`
}

type codec interface {
	encode(envelope) ([]byte, error)
	decode([]byte) (envelope, error)
}

func codecFor(format string) (codec, error) {
	switch format {
	case Binary:
		return binaryCodec{}, nil
	case Text:
		return textCodec{}, nil
	case XML:
		return xmlCodec{}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown archive format %q", format).
			WithDetail("supported", Formats())
	}
}

// Encode serializes entries in format.
func Encode(format string, entries map[int]string) ([]byte, error) {
	c, err := codecFor(format)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = map[int]string{}
	}
	if err := checkEntries(format, entries); err != nil {
		return nil, err
	}
	data, err := c.encode(envelope{Signature: Signature, Version: Version, Entries: entries})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveEncode, "failed to encode %s archive", format)
	}
	return data, nil
}

// checkEntries rejects values a format cannot bring back unchanged. None of
// the formats carry invalid UTF-8, and XML 1.0 has no representation for most
// control characters.
func checkEntries(format string, entries map[int]string) error {
	for _, key := range Keys(entries) {
		value := entries[key]
		if !utf8.ValidString(value) {
			return errors.Newf(errors.ErrInvalidInput, "entry %d is not valid UTF-8", key).
				WithDetail("key", key).
				WithDetail("format", format)
		}
		if format != XML {
			continue
		}
		if i := strings.IndexFunc(value, func(r rune) bool { return !isXMLChar(r) }); i >= 0 {
			return errors.Newf(errors.ErrInvalidInput, "entry %d holds a character XML cannot represent", key).
				WithDetail("key", key).
				WithDetail("format", format).
				WithDetail("offset", i)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// Decode restores entries from data written by Encode in the same format.
func Decode(format string, data []byte) (map[int]string, error) {
	c, err := codecFor(format)
	if err != nil {
		return nil, err
	}
	env, err := c.decode(data)
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrArchiveInvalid {
			return nil, err
		}
		return nil, errors.Wrapf(err, errors.ErrArchiveDecode, "failed to decode %s archive", format)
	}
	if env.Signature != Signature {
		return nil, errors.New(errors.ErrArchiveInvalid, "not a libtour archive").
			WithDetail("signature", env.Signature)
	}
	if env.Version < 1 || env.Version > Version {
		return nil, errors.Newf(errors.ErrArchiveInvalid, "unsupported archive version %d", env.Version).
			WithDetail("version", env.Version)
	}
	if env.Entries == nil {
		env.Entries = map[int]string{}
	}
	return env.Entries, nil
}

// Save encodes entries and writes them to path on fs.
func Save(fs afero.Fs, path, format string, entries map[int]string) error {
	logger := logging.GetLogger("archive")
	defer logging.LogOperationStart(logger, "save")()

	data, err := Encode(format, entries)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dir).WithDetail("path", path)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path).WithDetail("path", path)
	}

	logger.Debug().Str("path", path).Str("format", format).Int("bytes", len(data)).Msg("Archive written")
	return nil
}

// Load reads path from fs and decodes it.
func Load(fs afero.Fs, path, format string) (map[int]string, error) {
	logger := logging.GetLogger("archive")
	defer logging.LogOperationStart(logger, "load")()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", path).WithDetail("path", path)
	}
	entries, err := Decode(format, data)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("path", path).Int("entries", len(entries)).Msg("Archive read")
	return entries, nil
}

// Keys returns the keys of entries in ascending order.
func Keys(entries map[int]string) []int {
	return slices.Sorted(maps.Keys(entries))
}
