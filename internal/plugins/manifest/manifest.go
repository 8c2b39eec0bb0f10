// Package manifestplugin loads declarative theme plugins from YAML manifests.
//
// A manifest names its colors, variants, variant extensions and design tokens
// directly; color references are written in their "name.step" wire format.
package manifestplugin

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/plugin"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/theme"
	blueprinterrors "github.com/KyleBlankRollins/blueprint-sub000/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Manifest is the on-disk shape of a declarative plugin.
type Manifest struct {
	ID           string               `yaml:"id"`
	Version      string               `yaml:"version"`
	Name         string               `yaml:"name,omitempty"`
	Description  string               `yaml:"description,omitempty"`
	Author       string               `yaml:"author,omitempty"`
	License      string               `yaml:"license,omitempty"`
	Tags         []string             `yaml:"tags,omitempty"`
	Dependencies []DependencySpec     `yaml:"dependencies,omitempty"`
	Colors       map[string]ColorSpec `yaml:"colors,omitempty"`
	Variants     map[string]TokenSpec `yaml:"variants,omitempty"`
	Extends      []ExtensionSpec      `yaml:"extends,omitempty"`
	Tokens       map[string]any       `yaml:"tokens,omitempty"`
}

// DependencySpec declares another plugin this manifest relies on.
type DependencySpec struct {
	ID       string `yaml:"id"`
	Version  string `yaml:"version,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
}

// ColorSpec is a color scale. An omitted scale means every step.
type ColorSpec struct {
	Source colorref.Source `yaml:"source"`
	Scale  []colorref.Step `yaml:"scale,omitempty"`
}

// TokenSpec maps semantic token names to "name.step" references.
type TokenSpec map[string]string

// ExtensionSpec derives Name from Base with the given overrides.
type ExtensionSpec struct {
	Base      string    `yaml:"base"`
	Name      string    `yaml:"name"`
	Overrides TokenSpec `yaml:"overrides,omitempty"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Plugin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, blueprinterrors.NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Parse decodes a manifest and checks that every token reference is well formed.
// Whether referenced colors exist is only known once the plugin registers.
func Parse(path string, data []byte) (*Plugin, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, blueprinterrors.NewParseError(path, extractLine(err), err)
	}

	p := &Plugin{
		source:     path,
		meta:       m.metadata(),
		manifest:   m,
		variants:   make(map[string]theme.Tokens, len(m.Variants)),
		extensions: make([]theme.Tokens, len(m.Extends)),
	}

	for _, name := range sortedKeys(m.Variants) {
		tokens, err := parseTokens(m.Variants[name])
		if err != nil {
			return nil, blueprinterrors.NewParseError(path, 0, fmt.Errorf("variant %q: %w", name, err))
		}
		p.variants[name] = tokens
	}
	for i, ext := range m.Extends {
		if ext.Base == "" || ext.Name == "" {
			return nil, blueprinterrors.NewParseError(path, 0, fmt.Errorf("extends[%d]: base and name are required", i))
		}
		tokens, err := parseTokens(ext.Overrides)
		if err != nil {
			return nil, blueprinterrors.NewParseError(path, 0, fmt.Errorf("extends[%d] %q: %w", i, ext.Name, err))
		}
		p.extensions[i] = tokens
	}

	return p, nil
}

func (m Manifest) metadata() plugin.Metadata {
	meta := plugin.Metadata{
		ID:          m.ID,
		Version:     m.Version,
		Name:        m.Name,
		Description: m.Description,
		Author:      m.Author,
		License:     m.License,
		Tags:        m.Tags,
	}
	for _, dep := range m.Dependencies {
		meta.Dependencies = append(meta.Dependencies, plugin.Dependency{
			ID:       dep.ID,
			Version:  dep.Version,
			Optional: dep.Optional,
		})
	}
	return meta
}

func parseTokens(spec TokenSpec) (theme.Tokens, error) {
	out := make(theme.Tokens, len(spec))
	for _, name := range sortedKeys(spec) {
		token, ok := theme.ParseToken(name)
		if !ok {
			return nil, blueprinterrors.NewInvalidArgumentError("token", name, "not a semantic token")
		}
		ref, ok := colorref.Resolve(spec[name])
		if !ok {
			return nil, blueprinterrors.NewInvalidArgumentError("color reference", spec[name], `must look like "name.step"`)
		}
		out[token] = ref
	}
	return out, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}
