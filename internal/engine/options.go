package engine

import (
	"github.com/dshills/inkstorm/internal/engine/node"
	"github.com/dshills/inkstorm/internal/engine/position"
	"github.com/dshills/inkstorm/internal/schema"
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithDocument sets the initial document.
func WithDocument(doc *node.Document) Option {
	return func(e *Editor) {
		if doc != nil {
			e.doc = doc
		}
	}
}

// WithSelection sets the initial selection.
func WithSelection(sel position.Range) Option {
	return func(e *Editor) {
		c := sel.Clone()
		e.sel = &c
	}
}

// WithSchema adds validation rules consulted by normalization.
func WithSchema(rules ...schema.Rule) Option {
	return func(e *Editor) {
		e.rules = append(e.rules, rules...)
	}
}

// WithReadOnly creates a read-only editor. Mutating calls return
// ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Editor) {
		e.readOnly = true
	}
}
