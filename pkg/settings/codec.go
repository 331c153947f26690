package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// ErrUnsupportedFormat is returned for settings files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported settings file format")

// Format is the on-disk encoding of the settings file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode parses raw into a Data initialised with defaults, so fields missing
// from the file keep their default values. The returned version is empty
// when the file does not name one.
func Decode(format Format, raw []byte) (*Data, error) {
	d := Default()
	d.Version = VersionUnknown

	var err error
	switch format {
	case FormatJSON:
		// Comments and trailing commas are allowed in JSON settings
		err = json.Unmarshal(jsonc.ToJSON(raw), d)
	case FormatYAML:
		err = yaml.Unmarshal(raw, d)
	case FormatTOML:
		_, err = toml.Decode(string(raw), d)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s settings: %w", format, err)
	}

	if d.Providers == nil {
		d.Providers = []types.ProviderConfig{}
	}
	return d, nil
}

// Encode serialises d in the given format.
func Encode(format Format, d *Data) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json settings: %w", err)
		}
		return append(data, '\n'), nil

	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return nil, fmt.Errorf("failed to encode yaml settings: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode yaml settings: %w", err)
		}
		return buf.Bytes(), nil

	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(d); err != nil {
			return nil, fmt.Errorf("failed to encode toml settings: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
