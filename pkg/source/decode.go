package source

import (
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Decode unmarshals the payload into v using the document's format.
func (d Document) Decode(v any) error {
	switch d.Format() {
	case FormatJSON:
		if err := json.Unmarshal(d.raw, v); err != nil {
			return fmt.Errorf("source: decode json %s: %w", d.Location(), err)
		}
	default:
		if err := yaml.Unmarshal(d.raw, v); err != nil {
			return fmt.Errorf("source: decode yaml %s: %w", d.Location(), err)
		}
	}
	return nil
}
