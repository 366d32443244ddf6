package archive

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/libtour/libtour/pkg/errors"
)

type binaryCodec struct{}

func (binaryCodec) encode(env envelope) ([]byte, error) {
	return cbor.Marshal(env)
}

func (binaryCodec) decode(data []byte) (envelope, error) {
	var env envelope
	err := cbor.Unmarshal(data, &env)
	return env, err
}

type textCodec struct{}

// Values are written double-quoted so leading and trailing line breaks and
// whitespace-only strings survive the round trip.
func (textCodec) encode(env envelope) ([]byte, error) {
	entries := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range Keys(env.Entries) {
		entries.Content = append(entries.Content, intNode(key), quotedNode(env.Entries[key]))
	}
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "signature"}, quotedNode(env.Signature),
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "version"}, intNode(env.Version),
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "entries"}, entries,
	}}
	return yaml.Marshal(doc)
}

func intNode(n int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(n)}
}

func quotedNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: s}
}

func (textCodec) decode(data []byte) (envelope, error) {
	var env envelope
	err := yaml.Unmarshal(data, &env)
	return env, err
}

// xmlCodec writes
//
//	<archive signature="libtour::archive" version="1">
//	  <entry key="1">Hello, </entry>
//	</archive>
type xmlCodec struct{}

func (xmlCodec) encode(env envelope) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("archive")
	root.CreateAttr("signature", env.Signature)
	root.CreateAttr("version", strconv.Itoa(env.Version))
	for _, key := range Keys(env.Entries) {
		entry := root.CreateElement("entry")
		entry.CreateAttr("key", strconv.Itoa(key))
		entry.SetText(env.Entries[key])
	}

	// Canonical text keeps a carriage return as &#xD; instead of letting the
	// parser fold it into a newline.
	doc.WriteSettings.CanonicalText = true
	indent := etree.NewIndentSettings()
	indent.Spaces = 2
	indent.PreserveLeafWhitespace = true
	doc.IndentWithSettings(indent)
	return doc.WriteToBytes()
}

func (xmlCodec) decode(data []byte) (envelope, error) {
	var env envelope
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return env, err
	}

	root := doc.SelectElement("archive")
	if root == nil {
		return env, errors.New(errors.ErrArchiveInvalid, "missing <archive> root element")
	}
	env.Signature = root.SelectAttrValue("signature", "")
	version, err := strconv.Atoi(root.SelectAttrValue("version", "0"))
	if err != nil {
		return env, errors.Wrap(err, errors.ErrArchiveInvalid, "archive version is not a number")
	}
	env.Version = version

	env.Entries = make(map[int]string)
	for _, entry := range root.SelectElements("entry") {
		raw := entry.SelectAttrValue("key", "")
		key, err := strconv.Atoi(raw)
		if err != nil {
			return env, errors.Wrapf(err, errors.ErrArchiveInvalid, "entry key %q is not a number", raw)
		}
		if _, dup := env.Entries[key]; dup {
			return env, errors.Newf(errors.ErrArchiveInvalid, "duplicate entry key %d", key)
		}
		env.Entries[key] = entry.Text()
	}
	return env, nil
}
