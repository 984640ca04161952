package views

import (
	"errors"
	"fmt"

	"github.com/preston-bernstein/ipl-stats-service/internal/dataset"
)

var (
	// ErrUnknownEdition is returned when an edition name is not in the catalog.
	ErrUnknownEdition = errors.New("unknown edition")
	// ErrUnknownView is returned when an edition has no view with the given name.
	ErrUnknownView = errors.New("unknown view")
	// ErrInvalidView is returned when a view definition cannot be run.
	ErrInvalidView = errors.New("invalid view")
	// ErrInputRequired is returned when an entity view is run without input.
	ErrInputRequired = errors.New("input required")
)

// View is one tab of a dashboard: an operation plus presentation options.
type View struct {
	Name       string         `json:"name" yaml:"name"`
	Title      string         `json:"title" yaml:"title"`
	Operation  Operation      `json:"operation" yaml:"operation"`
	Vocabulary dataset.Column `json:"vocabulary,omitempty" yaml:"vocabulary"`
	Entity     bool           `json:"entity" yaml:"-"`
	Limit      int            `json:"limit,omitempty" yaml:"limit"`
}

// Edition is a named list of views.
type Edition struct {
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title" yaml:"title"`
	Views []View `json:"views" yaml:"views"`
}

// View looks up a view by name.
func (e Edition) View(name string) (View, bool) {
	for _, v := range e.Views {
		if v.Name == name {
			return v, true
		}
	}
	return View{}, false
}

// normalize fills defaults from the operation and checks the definition.
func (v View) normalize() (View, error) {
	if v.Name == "" {
		return View{}, fmt.Errorf("%w: name required", ErrInvalidView)
	}
	if !v.Operation.Known() {
		return View{}, fmt.Errorf("%w: %s: unknown operation %q", ErrInvalidView, v.Name, v.Operation)
	}
	if v.Limit < 0 {
		return View{}, fmt.Errorf("%w: %s: negative limit", ErrInvalidView, v.Name)
	}
	v.Entity = v.Operation.Entity()
	if !v.Entity {
		v.Vocabulary = ""
	} else if v.Vocabulary == "" {
		v.Vocabulary = v.Operation.DefaultVocabulary()
	} else if _, err := dataset.ParseColumn(string(v.Vocabulary)); err != nil {
		return View{}, fmt.Errorf("%w: %s: %w", ErrInvalidView, v.Name, err)
	}
	if v.Title == "" {
		v.Title = v.Name
	}
	return v, nil
}

func (e Edition) normalize() (Edition, error) {
	if e.Name == "" {
		return Edition{}, fmt.Errorf("%w: edition name required", ErrInvalidView)
	}
	if len(e.Views) == 0 {
		return Edition{}, fmt.Errorf("%w: edition %s has no views", ErrInvalidView, e.Name)
	}
	seen := make(map[string]struct{}, len(e.Views))
	out := e
	out.Views = make([]View, 0, len(e.Views))
	for _, v := range e.Views {
		nv, err := v.normalize()
		if err != nil {
			return Edition{}, fmt.Errorf("edition %s: %w", e.Name, err)
		}
		if _, dup := seen[nv.Name]; dup {
			return Edition{}, fmt.Errorf("%w: edition %s: duplicate view %q", ErrInvalidView, e.Name, nv.Name)
		}
		seen[nv.Name] = struct{}{}
		out.Views = append(out.Views, nv)
	}
	if out.Title == "" {
		out.Title = out.Name
	}
	return out, nil
}
