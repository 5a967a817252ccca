package vocabulary

import (
	"sync"
)

// PredicateMetadata describes a registered predicate.
type PredicateMetadata struct {
	// Name is the predicate as it appears in statements.
	Name string

	// Description is a human-readable explanation of the predicate.
	Description string

	// DataType is the expected Go type of the object value for literal
	// predicates. Examples: "string", "float64", "bool", "time.Time".
	// Empty for object properties.
	DataType string

	// StandardIRI is the W3C/RDF equivalent IRI, used during RDF export.
	// Empty if the predicate has no standard mapping.
	StandardIRI string

	// IsObjectProperty marks predicates whose object is an entity reference
	// rather than a literal value.
	IsObjectProperty bool
}

// Global predicate registry
var (
	registryMu        sync.RWMutex
	predicateRegistry = make(map[string]PredicateMetadata)
)

// Option is a functional option for configuring predicate registration.
type Option func(*PredicateMetadata)

// WithDescription sets the human-readable description of the predicate.
func WithDescription(desc string) Option {
	return func(m *PredicateMetadata) {
		m.Description = desc
	}
}

// WithDataType sets the expected Go type for the object value.
// Examples: "string", "float64", "bool", "time.Time"
func WithDataType(dataType string) Option {
	return func(m *PredicateMetadata) {
		m.DataType = dataType
	}
}

// WithIRI sets the W3C/RDF equivalent IRI for standards compliance.
// This enables RDF export and semantic web interoperability.
// Use constants from iris.go for common vocabularies.
func WithIRI(iri string) Option {
	return func(m *PredicateMetadata) {
		m.StandardIRI = iri
	}
}

// WithObjectProperty marks the predicate as an object property: its object
// is an entity reference, never a literal.
func WithObjectProperty() Option {
	return func(m *PredicateMetadata) {
		m.IsObjectProperty = true
	}
}

// Register registers a predicate with its metadata in the global registry.
// This is called during package initialization by the vocabulary itself;
// if a predicate is already registered it is overwritten.
func Register(name string, opts ...Option) {
	meta := PredicateMetadata{Name: name}

	for _, opt := range opts {
		opt(&meta)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	predicateRegistry[name] = meta
}

// Lookup returns the metadata for a registered predicate.
func Lookup(name string) (PredicateMetadata, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	meta, ok := predicateRegistry[name]
	return meta, ok
}

// IsObjectProperty reports whether name is a registered object property.
func IsObjectProperty(name string) bool {
	meta, ok := Lookup(name)
	return ok && meta.IsObjectProperty
}
