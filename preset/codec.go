package preset

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec converts a Collection to and from its on-disk text form.
type Codec interface {
	Marshal(c Collection) ([]byte, error)
	Unmarshal(data []byte) (Collection, error)
}

// CodecFor picks a codec from the file extension. YAML is used for
// .yaml and .yml, JSON for everything else.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONCodec{}
	}
}

// record is the decoded form of a SampleSet. Samples is a slice so that both
// codecs accept any slot count: extra slots are dropped, missing ones are "".
type record struct {
	Name    string   `json:"name" yaml:"name"`
	Samples []string `json:"samples" yaml:"samples"`
}

func fromRecords(rs []record) Collection {
	if rs == nil {
		return nil
	}
	c := make(Collection, len(rs))
	for i, r := range rs {
		c[i].Name = r.Name
		copy(c[i].Samples[:], r.Samples)
	}
	return c
}

type JSONCodec struct{}

func (JSONCodec) Marshal(c Collection) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (JSONCodec) Unmarshal(data []byte) (Collection, error) {
	var rs []record
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, err
	}
	return fromRecords(rs), nil
}

type YAMLCodec struct{}

func (YAMLCodec) Marshal(c Collection) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (YAMLCodec) Unmarshal(data []byte) (Collection, error) {
	var rs []record
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, err
	}
	return fromRecords(rs), nil
}
