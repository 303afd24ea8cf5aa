// Package style provides the catalog of interior design styles a room can be
// redesigned in. The catalog starts with the built-in styles and can be
// extended (or overridden by name) from YAML files.
package style

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Style is a selectable design style.
type Style struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Guidance is appended to the generation prompt when set.
	Guidance  string `yaml:"guidance,omitempty" json:"guidance,omitempty"`
	Thumbnail string `yaml:"thumbnail,omitempty" json:"thumbnail,omitempty"`
}

// Built-in style names.
const (
	Modern       = "Modern"
	Scandinavian = "Scandinavian"
	Industrial   = "Industrial"
	Boho         = "Boho"
	MidCentury   = "Mid-Century Modern"
	Minimalist   = "Minimalist"
	ArtDeco      = "Art Deco"
	Coastal      = "Coastal"
)

// Builtin returns the built-in styles in display order.
func Builtin() []Style {
	return []Style{
		{Name: Modern, Description: "Clean lines, neutral palette, sleek finishes",
			Thumbnail: "https://images.unsplash.com/photo-1502005229766-939760a7cb0d?w=300&h=200&fit=crop"},
		{Name: Scandinavian, Description: "Light woods, soft textiles, airy and bright",
			Thumbnail: "https://images.unsplash.com/photo-1556228453-efd6c1ff04f6?w=300&h=200&fit=crop"},
		{Name: Industrial, Description: "Exposed brick, metal, raw materials",
			Thumbnail: "https://images.unsplash.com/photo-1505691938895-1758d7feb511?w=300&h=200&fit=crop"},
		{Name: Boho, Description: "Layered patterns, plants, warm eclectic pieces",
			Thumbnail: "https://images.unsplash.com/photo-1522771753035-4a5000b5b9fd?w=300&h=200&fit=crop"},
		{Name: MidCentury, Description: "Organic curves, walnut, bold accent colors",
			Thumbnail: "https://images.unsplash.com/photo-1554995207-c18c203602cb?w=300&h=200&fit=crop"},
		{Name: Minimalist, Description: "Essential furniture, uncluttered surfaces",
			Thumbnail: "https://images.unsplash.com/photo-1493809842364-78817add7ffb?w=300&h=200&fit=crop"},
		{Name: ArtDeco, Description: "Geometric motifs, brass, rich jewel tones",
			Thumbnail: "https://images.unsplash.com/photo-1507089947368-19c1da9775ae?w=300&h=200&fit=crop"},
		{Name: Coastal, Description: "Breezy blues, whites, natural fibers",
			Thumbnail: "https://images.unsplash.com/photo-1600210492486-724fe5c67fb0?w=300&h=200&fit=crop"},
	}
}

// Catalog is an ordered, name-unique set of styles.
type Catalog struct {
	styles []Style
}

// NewCatalog creates a catalog holding the built-in styles.
func NewCatalog() *Catalog {
	return &Catalog{styles: Builtin()}
}

// Styles returns a copy of the styles in display order.
func (c *Catalog) Styles() []Style {
	out := make([]Style, len(c.styles))
	copy(out, c.styles)
	return out
}

// Names returns style names in display order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.styles))
	for i, s := range c.styles {
		names[i] = s.Name
	}
	return names
}

// Len returns the number of styles.
func (c *Catalog) Len() int {
	return len(c.styles)
}

// At returns the style at index i.
func (c *Catalog) At(i int) Style {
	return c.styles[i]
}

// Lookup finds a style by name, case-insensitively.
func (c *Catalog) Lookup(name string) (Style, bool) {
	name = strings.TrimSpace(name)
	for _, s := range c.styles {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Style{}, false
}

// Add inserts a style, replacing an existing one with the same name in place.
func (c *Catalog) Add(s Style) {
	for i, existing := range c.styles {
		if strings.EqualFold(existing.Name, s.Name) {
			c.styles[i] = s
			return
		}
	}
	c.styles = append(c.styles, s)
}

// catalogFile is the on-disk YAML layout.
type catalogFile struct {
	Styles []Style `yaml:"styles"`
}

// Parse decodes YAML style definitions.
func Parse(data []byte) ([]Style, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}
	for i, s := range f.Styles {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("style %d has no name", i+1)
		}
		f.Styles[i].Name = strings.TrimSpace(s.Name)
	}
	return f.Styles, nil
}

// LoadFile merges styles from a YAML file into the catalog.
// A missing file is not an error.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read styles file: %w", err)
	}

	styles, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, s := range styles {
		c.Add(s)
	}
	return nil
}
