package extractor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Selector locates one named field in page markup. Selectors with Children
// produce one nested map per matched element; Multiple selectors produce a
// list. The schema mirrors the selectors.yml files used by selector-based
// scrapers.
type Selector struct {
	CSS       string              `yaml:"css"`
	Type      string              `yaml:"type"` // text | link | attribute
	Attribute string              `yaml:"attribute,omitempty"`
	Multiple  bool                `yaml:"multiple,omitempty"`
	Children  map[string]Selector `yaml:"children,omitempty"`
}

// LoadSelectors reads field selector definitions from a YAML file.
func LoadSelectors(path string) (map[string]Selector, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read selectors file: %w", err)
	}
	return ParseSelectors(b)
}

func ParseSelectors(b []byte) (map[string]Selector, error) {
	var out map[string]Selector
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse selectors: %w", err)
	}
	for name, sel := range out {
		if err := validate(name, sel); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func validate(name string, sel Selector) error {
	if sel.CSS == "" {
		return fmt.Errorf("selector %q: css is required", name)
	}
	switch sel.Type {
	case "", "text", "link":
	case "attribute":
		if sel.Attribute == "" {
			return fmt.Errorf("selector %q: attribute name is required", name)
		}
	default:
		return fmt.Errorf("selector %q: unknown type %q", name, sel.Type)
	}
	for child, cs := range sel.Children {
		if err := validate(name+"."+child, cs); err != nil {
			return err
		}
	}
	return nil
}
