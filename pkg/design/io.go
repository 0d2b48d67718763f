package design

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrUnknownFormat is returned for file formats other than JSON and TOML.
	ErrUnknownFormat = errors.New("unknown design format")

	// ErrMalformed wraps decoder failures.
	ErrMalformed = errors.New("malformed design")

	// ErrEmptyDesign is returned for designs without nodes.
	ErrEmptyDesign = errors.New("design has no nodes")
)

// FormatFromPath derives the file format from path's extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Parse decodes data in the given format.
func Parse(data []byte, format string) (Design, error) {
	var d Design
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return Design{}, fmt.Errorf("%w: json: %w", ErrMalformed, err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &d)
		if err != nil {
			return Design{}, fmt.Errorf("%w: toml: %w", ErrMalformed, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 && !onlyMeta(undecoded) {
			return Design{}, fmt.Errorf("%w: toml: unknown field %s", ErrMalformed, undecoded[0])
		}
	default:
		return Design{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if len(d.Nodes) == 0 {
		return Design{}, ErrEmptyDesign
	}
	return d, nil
}

// meta tables decode into map[string]any, which toml still reports as
// undecoded for nested keys.
func onlyMeta(keys []toml.Key) bool {
	for _, k := range keys {
		if len(k) < 2 || k[1] != "meta" {
			return false
		}
	}
	return true
}

// Read decodes a design from r.
func Read(r io.Reader, format string) (Design, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Design{}, fmt.Errorf("read design: %w", err)
	}
	return Parse(data, format)
}

// ReadFile reads a design file, picking the format from its extension.
func ReadFile(path string) (Design, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Design{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Design{}, fmt.Errorf("read %s: %w", path, err)
	}
	d, err := Parse(data, format)
	if err != nil {
		return Design{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Marshal encodes d in the given format. JSON is pretty-printed.
func Marshal(d Design, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(d, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(d); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteFile writes d to path in the format implied by its extension.
func WriteFile(d Design, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(d, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MarshalReport serializes a report to pretty-printed JSON bytes.
func MarshalReport(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// UnmarshalReport deserializes a report from JSON bytes.
func UnmarshalReport(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	if r.Placements == nil {
		r.Placements = []Placement{}
	}
	return &r, nil
}

// WriteReport writes r as JSON followed by a newline.
func WriteReport(w io.Writer, r *Report) error {
	data, err := MarshalReport(r)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteReportFile writes r to a JSON file.
func WriteReportFile(r *Report, path string) error {
	data, err := MarshalReport(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
