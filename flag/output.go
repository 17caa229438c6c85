package flag

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrFormat is returned for an output format other than text, yaml or json.
var ErrFormat = errors.New("unknown output format")

// Encode writes v to w as yaml or json.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	}

	return fmt.Errorf("%q: %w", format, ErrFormat)
}
