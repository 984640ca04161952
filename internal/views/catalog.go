// Package views turns dashboard tabs into data: each view names a query
// operation and how its input is resolved, and editions group views the way
// the dashboards did.
package views

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog holds editions by name in registration order.
type Catalog struct {
	editions       map[string]Edition
	order          []string
	defaultEdition string
}

type catalogFile struct {
	Default  string    `yaml:"default"`
	Editions []Edition `yaml:"editions"`
}

// NewCatalog builds a catalog from editions. The first edition becomes the default.
func NewCatalog(editions ...Edition) (*Catalog, error) {
	c := &Catalog{editions: make(map[string]Edition, len(editions))}
	for _, e := range editions {
		if err := c.add(e); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Builtin returns a catalog with the smart and classic editions.
func Builtin() *Catalog {
	c, err := NewCatalog(builtinEditions()...)
	if err != nil {
		panic(fmt.Sprintf("builtin editions invalid: %v", err))
	}
	return c
}

// LoadCatalog returns the built-in catalog extended with the editions in the
// YAML file at path. An empty path yields the built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	c := Builtin()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read editions: %w", err)
	}
	if err := c.Merge(raw); err != nil {
		return nil, fmt.Errorf("editions %s: %w", path, err)
	}
	return c, nil
}

// Merge adds the editions described by a YAML document.
func (c *Catalog) Merge(raw []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	for _, e := range file.Editions {
		if err := c.add(e); err != nil {
			return err
		}
	}
	if file.Default != "" {
		return c.SetDefault(file.Default)
	}
	return nil
}

// SetDefault selects the edition used when callers name none.
func (c *Catalog) SetDefault(name string) error {
	if _, ok := c.editions[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEdition, name)
	}
	c.defaultEdition = name
	return nil
}

// Default returns the name of the default edition.
func (c *Catalog) Default() string { return c.defaultEdition }

// Editions returns every edition in registration order.
func (c *Catalog) Editions() []Edition {
	out := make([]Edition, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.editions[name])
	}
	return out
}

// Edition looks up an edition. An empty name selects the default.
func (c *Catalog) Edition(name string) (Edition, error) {
	if name == "" {
		name = c.defaultEdition
	}
	e, ok := c.editions[name]
	if !ok {
		return Edition{}, fmt.Errorf("%w: %q", ErrUnknownEdition, name)
	}
	return e, nil
}

// View looks up a view inside an edition. An empty edition selects the default.
func (c *Catalog) View(edition, name string) (View, error) {
	e, err := c.Edition(edition)
	if err != nil {
		return View{}, err
	}
	v, ok := e.View(name)
	if !ok {
		return View{}, fmt.Errorf("%w: %q in edition %q", ErrUnknownView, name, e.Name)
	}
	return v, nil
}

// IsNotFound reports whether err means an edition or view does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownEdition) || errors.Is(err, ErrUnknownView)
}

func (c *Catalog) add(e Edition) error {
	ne, err := e.normalize()
	if err != nil {
		return err
	}
	if _, dup := c.editions[ne.Name]; dup {
		return fmt.Errorf("%w: duplicate edition %q", ErrInvalidView, ne.Name)
	}
	c.editions[ne.Name] = ne
	c.order = append(c.order, ne.Name)
	if c.defaultEdition == "" {
		c.defaultEdition = ne.Name
	}
	return nil
}
