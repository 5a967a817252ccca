package graph

import (
	"time"
)

// Object is the third position of a statement: either a reference to another
// entity (or class) or a scalar literal.
type Object struct {
	ref string
	lit *Value
}

// Ref constructs an object referencing another entity or class by id.
func Ref(id string) Object {
	return Object{ref: id}
}

// Lit constructs a literal object.
func Lit(v Value) Object {
	return Object{lit: &v}
}

// IsRef reports whether the object is an entity/class reference.
func (o Object) IsRef() bool {
	return o.lit == nil
}

// RefID returns the referenced id, or empty string for literals.
func (o Object) RefID() string {
	if o.lit != nil {
		return ""
	}
	return o.ref
}

// Value returns the literal value and whether the object is a literal.
func (o Object) Value() (Value, bool) {
	if o.lit == nil {
		return Value{}, false
	}
	return *o.lit, true
}

// Lexical returns the object's string form as seen by query bindings:
// the referenced id for references, the canonical lexical form for literals.
func (o Object) Lexical() string {
	if o.lit != nil {
		return o.lit.Lexical()
	}
	return o.ref
}

// Equal reports whether two objects reference the same entity or carry
// equal literals.
func (o Object) Equal(other Object) bool {
	if o.IsRef() != other.IsRef() {
		return false
	}
	if o.IsRef() {
		return o.ref == other.ref
	}
	return o.lit.Equal(*other.lit)
}

// Statement is a directed (subject, predicate, object) fact. Statements are
// append-only: the store never updates or deletes them, and adding the same
// statement twice records a duplicate fact.
type Statement struct {
	// Subject is the entity id this statement describes.
	Subject string

	// Predicate names the property or relationship. Predicates are defined
	// in the vocabulary package.
	Predicate string

	// Object is the entity reference or literal value.
	Object Object

	// Source identifies where this assertion came from.
	// Examples: "store", "inference", "insight_sync", "ontology"
	Source string

	// Timestamp indicates when this assertion was made.
	Timestamp time.Time

	// Confidence indicates the reliability of this assertion (0.0 to 1.0).
	// Direct assertions carry 1.0; inferred statements carry 0.5.
	Confidence float64
}

// Assertion confidence levels used by the store.
const (
	confidenceDirect   = 1.0
	confidenceInferred = 0.5
)
