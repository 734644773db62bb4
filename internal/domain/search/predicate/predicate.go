// Package predicate is a small expression tree (AND/OR/NOT over leaf
// predicates) that each matcher builds and the store executor evaluates
// uniformly against a document.
package predicate

import (
	"strings"

	"github.com/paperdex/paperdex/internal/domain/document"
	"github.com/paperdex/paperdex/internal/domain/search/keyword"
)

// Predicate decides whether a document is a candidate for a query.
type Predicate interface {
	Eval(doc document.Document) bool
}

type and struct{ children []Predicate }

func (p and) Eval(doc document.Document) bool {
	for _, c := range p.children {
		if !c.Eval(doc) {
			return false
		}
	}
	return true
}

type or struct{ children []Predicate }

func (p or) Eval(doc document.Document) bool {
	for _, c := range p.children {
		if c.Eval(doc) {
			return true
		}
	}
	return false
}

type not struct{ child Predicate }

func (p not) Eval(doc document.Document) bool { return !p.child.Eval(doc) }

type leaf struct{ fn func(doc document.Document) bool }

func (p leaf) Eval(doc document.Document) bool { return p.fn(doc) }

// And matches documents satisfying every child. And() matches everything.
func And(children ...Predicate) Predicate { return and{children: children} }

// Or matches documents satisfying at least one child. Or() matches nothing.
func Or(children ...Predicate) Predicate { return or{children: children} }

// Not inverts a predicate.
func Not(child Predicate) Predicate { return not{child: child} }

// TextContains matches documents whose title, abstract, or any author
// contains the query, case-insensitively.
func TextContains(query string) Predicate {
	q := strings.ToLower(query)
	return leaf{fn: func(doc document.Document) bool {
		if strings.Contains(strings.ToLower(doc.Title()), q) {
			return true
		}
		if strings.Contains(strings.ToLower(doc.Abstract()), q) {
			return true
		}
		for _, a := range doc.Authors() {
			if strings.Contains(strings.ToLower(a), q) {
				return true
			}
		}
		return false
	}}
}

// KeywordsMatch matches documents selected by the keyword query.
func KeywordsMatch(q keyword.Query) Predicate {
	return leaf{fn: func(doc document.Document) bool {
		_, ok := q.Evaluate(doc.Keywords())
		return ok
	}}
}

// FolderEquals matches documents scoped to the given flat folder label.
func FolderEquals(name string) Predicate {
	return leaf{fn: func(doc document.Document) bool { return doc.FolderName() == name }}
}

// YearEquals matches documents published in the given year.
func YearEquals(year int) Predicate {
	return leaf{fn: func(doc document.Document) bool { return doc.PublicationYear() == year }}
}

// JournalEquals matches documents published in the given journal.
func JournalEquals(name string) Predicate {
	return leaf{fn: func(doc document.Document) bool { return doc.JournalName() == name }}
}

// StatusEquals matches documents in the given processing state.
func StatusEquals(status document.Status) Predicate {
	return leaf{fn: func(doc document.Document) bool { return doc.Status() == status }}
}

// IDEquals matches the document with the given identifier.
func IDEquals(id string) Predicate {
	return leaf{fn: func(doc document.Document) bool { return doc.ID() == id }}
}

// HasBothEmbeddings matches documents carrying both embedding vectors.
func HasBothEmbeddings() Predicate {
	return leaf{fn: func(doc document.Document) bool { return doc.HasEmbeddings() }}
}
