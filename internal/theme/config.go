package theme

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/merge"
)

// ColorEntry is the serialized form of a registered color scale.
type ColorEntry struct {
	Source colorref.Source `json:"source" yaml:"source"`
	Scale  []colorref.Step `json:"scale" yaml:"scale"`
}

// VariantMetadata records provenance of a theme variant.
type VariantMetadata struct {
	PluginID string `json:"pluginId,omitempty" yaml:"pluginId,omitempty"`
	Extends  string `json:"extends,omitempty" yaml:"extends,omitempty"`
}

// Config is the fully assembled theme configuration handed to the CSS and type generators.
//
// Design tokens live in Tokens and are written at the top level next to
// colors, themes and themeMetadata when serialized.
type Config struct {
	Colors        map[string]ColorEntry
	Themes        map[string]map[string]string
	ThemeMetadata map[string]VariantMetadata
	Tokens        map[string]any
}

// Document returns the serialization tree of the configuration.
func (c *Config) Document() map[string]any {
	doc := merge.Clone(c.Tokens)
	if doc == nil {
		doc = make(map[string]any)
	}
	doc["colors"] = c.Colors
	doc["themes"] = c.Themes
	doc["themeMetadata"] = c.ThemeMetadata
	return doc
}

// MarshalJSON flattens design tokens into the top-level object.
func (c *Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Document())
}

// ToYAML renders the configuration as a YAML document.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c.Document())
}
