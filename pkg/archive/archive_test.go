package archive_test

import (
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libtour/libtour/pkg/archive"
	"github.com/libtour/libtour/pkg/errors"
)

func message() map[int]string {
	return map[int]string{
		1: "Hello, ",
		2: "this ",
		3: "is ",
		4: "a ",
		5: "message.",
	}
}

func TestSaveLoadEveryFormat(t *testing.T) {
	for _, format := range archive.Formats() {
		t.Run(format, func(t *testing.T) {
			fs := afero.NewMemMapFs()

			require.NoError(t, archive.Save(fs, "out/map.dat", format, message()))
			got, err := archive.Load(fs, "out/map.dat", format)
			require.NoError(t, err)

			assert.Equal(t, message(), got)
		})
	}
}

func TestEmptyMap(t *testing.T) {
	for _, format := range archive.Formats() {
		t.Run(format, func(t *testing.T) {
			data, err := archive.Encode(format, nil)
			require.NoError(t, err)
			got, err := archive.Decode(format, data)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestXMLLayout(t *testing.T) {
	data, err := archive.Encode(archive.XML, map[int]string{2: "b & c", 1: "a"})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `<archive signature="libtour::archive" version="1">`)
	assert.Contains(t, out, `<entry key="1">a</entry>`)
	assert.Contains(t, out, `<entry key="2">b &amp; c</entry>`)
	assert.Less(t, strings.Index(out, `key="1"`), strings.Index(out, `key="2"`), "entries are written in key order")
}

func TestRejectsForeignData(t *testing.T) {
	t.Run("wrong_signature", func(t *testing.T) {
		data, err := cbor.Marshal(map[string]interface{}{"signature": "someone-else", "version": 1})
		require.NoError(t, err)

		_, err = archive.Decode(archive.Binary, data)
		assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveInvalid))
	})

	t.Run("future_version", func(t *testing.T) {
		_, err := archive.Decode(archive.Text, []byte("signature: libtour::archive\nversion: 99\n"))
		require.True(t, errors.IsErrorCode(err, errors.ErrArchiveInvalid))
		assert.Equal(t, 99, errors.GetErrorDetails(err)["version"])
	})

	t.Run("garbage_binary", func(t *testing.T) {
		_, err := archive.Decode(archive.Binary, []byte{0xff, 0x00, 0x13})
		assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveDecode))
	})

	t.Run("xml_without_root", func(t *testing.T) {
		_, err := archive.Decode(archive.XML, []byte(`<other/>`))
		assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveInvalid))
	})

	t.Run("xml_bad_key", func(t *testing.T) {
		_, err := archive.Decode(archive.XML, []byte(`<archive signature="libtour::archive" version="1"><entry key="x">a</entry></archive>`))
		assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveInvalid))
	})

	t.Run("xml_duplicate_key", func(t *testing.T) {
		_, err := archive.Decode(archive.XML, []byte(`<archive signature="libtour::archive" version="1"><entry key="1">a</entry><entry key="1">b</entry></archive>`))
		assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveInvalid))
	})

	t.Run("format_mismatch", func(t *testing.T) {
		data, err := archive.Encode(archive.XML, message())
		require.NoError(t, err)

		_, err = archive.Decode(archive.Binary, data)
		assert.Error(t, err)
	})
}

func TestUnknownFormat(t *testing.T) {
	_, err := archive.Encode("json", message())
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = archive.Save(afero.NewMemMapFs(), "map.dat", "json", message())
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestFileErrors(t *testing.T) {
	_, err := archive.Load(afero.NewMemMapFs(), "missing.dat", archive.Binary)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))

	ro := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err = archive.Save(ro, "map.dat", archive.Binary, message())
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, archive.Keys(message()))
	assert.Empty(t, archive.Keys(nil))
}

func TestAwkwardValuesSurvive(t *testing.T) {
	entries := map[int]string{
		1: "\nx\n",
		2: "x\n",
		3: "  ",
		4: "\t",
		5: "",
		6: "a: b",
		7: "line\r\nbreak",
		8: "\"quoted\" 'single' <tag>",
		9: "café \U0001F600",
	}
	for _, format := range archive.Formats() {
		t.Run(format, func(t *testing.T) {
			fs := afero.NewMemMapFs()

			require.NoError(t, archive.Save(fs, "map.dat", format, entries))
			got, err := archive.Load(fs, "map.dat", format)
			require.NoError(t, err)

			assert.Equal(t, entries, got)
		})
	}
}

func TestRejectsUnrepresentableValues(t *testing.T) {
	t.Run("invalid_utf8_every_format", func(t *testing.T) {
		for _, format := range archive.Formats() {
			fs := afero.NewMemMapFs()

			err := archive.Save(fs, "map.dat", format, map[int]string{1: "ok", 2: "bad\xff"})
			require.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), format)
			assert.Equal(t, 2, errors.GetErrorDetails(err)["key"], format)

			exists, statErr := afero.Exists(fs, "map.dat")
			require.NoError(t, statErr)
			assert.False(t, exists, "nothing is written for %s", format)
		}
	})

	t.Run("control_char_in_xml", func(t *testing.T) {
		_, err := archive.Encode(archive.XML, map[int]string{3: "a\x01b"})
		require.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.Equal(t, 3, errors.GetErrorDetails(err)["key"])
	})

	t.Run("control_char_elsewhere", func(t *testing.T) {
		for _, format := range []string{archive.Binary, archive.Text} {
			data, err := archive.Encode(format, map[int]string{3: "a\x01b"})
			require.NoError(t, err, format)
			got, err := archive.Decode(format, data)
			require.NoError(t, err, format)
			assert.Equal(t, "a\x01b", got[3], format)
		}
	})
}
