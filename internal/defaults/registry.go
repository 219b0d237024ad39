// Package defaults holds the fixed board defaults: the column set created
// with every new board and the closed tag color palette. Both ship as
// embedded YAML so the values stay data, not code.
package defaults

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// TagColor is one palette entry: a stable name and its display hex code
type TagColor struct {
	Name string `yaml:"name" json:"name"`
	Hex  string `yaml:"hex" json:"hex"`
}

type boardDefaults struct {
	DefaultColumns []string   `yaml:"default_columns"`
	TagColors      []TagColor `yaml:"tag_colors"`
}

// Registry serves the board defaults loaded at startup
type Registry struct {
	columns []string
	colors  []TagColor
	byName  map[string]TagColor
}

// NewRegistry loads the embedded defaults file
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/board.yaml")
	if err != nil {
		return nil, fmt.Errorf("read board defaults: %w", err)
	}

	var defs boardDefaults
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("unmarshal board defaults: %w", err)
	}

	if len(defs.DefaultColumns) == 0 {
		return nil, fmt.Errorf("board defaults define no columns")
	}
	if len(defs.TagColors) == 0 {
		return nil, fmt.Errorf("board defaults define no tag colors")
	}

	r := &Registry{
		columns: defs.DefaultColumns,
		colors:  defs.TagColors,
		byName:  make(map[string]TagColor, len(defs.TagColors)),
	}
	for _, c := range defs.TagColors {
		r.byName[strings.ToUpper(c.Name)] = c
	}
	return r, nil
}

// DefaultColumns returns the column titles every new board starts with,
// in creation order.
func (r *Registry) DefaultColumns() []string {
	columns := make([]string, len(r.columns))
	copy(columns, r.columns)
	return columns
}

// TagColors returns the full palette in definition order.
func (r *Registry) TagColors() []TagColor {
	colors := make([]TagColor, len(r.colors))
	copy(colors, r.colors)
	return colors
}

// LookupColor resolves a palette entry by name, case-insensitively.
// Membership in the palette is the only validity test for tag colors.
func (r *Registry) LookupColor(name string) (TagColor, bool) {
	color, ok := r.byName[strings.ToUpper(strings.TrimSpace(name))]
	return color, ok
}
