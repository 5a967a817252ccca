// Package ontology declares the fixed entity-class hierarchy and relationship
// vocabulary into a store and audits the store's type assertions against it.
package ontology

import (
	"log/slog"
	"sort"

	"github.com/c360/semkg/graph"
	"github.com/c360/semkg/vocabulary"
)

// Manager owns the declared ontology for one store. It is constructed once
// per process; the declarations are asserted at construction and never
// mutated afterwards.
type Manager struct {
	store   *graph.Store
	logger  *slog.Logger
	classes map[string]string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for validation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager declares the class hierarchy and object-property vocabulary
// into the store and returns the manager. Declaration statements carry the
// vocabulary's meta-classes: each class is asserted as an instance of Class,
// each object property as an instance of Property, and subclass links join
// classes to their superclass.
func NewManager(store *graph.Store, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		logger:  slog.Default().With("component", "ontology"),
		classes: vocabulary.Classes(),
	}
	for _, opt := range opts {
		opt(m)
	}

	// Deterministic declaration order keeps exports stable.
	classNames := make([]string, 0, len(m.classes))
	for class := range m.classes {
		classNames = append(classNames, class)
	}
	sort.Strings(classNames)

	for _, class := range classNames {
		store.Assert(class, vocabulary.PredType, graph.Ref(vocabulary.MetaClass))
		if super := m.classes[class]; super != "" {
			store.Assert(class, vocabulary.PredSubClassOf, graph.Ref(super))
		}
	}

	props := vocabulary.ObjectProperties()
	sort.Strings(props)
	for _, prop := range props {
		store.Assert(prop, vocabulary.PredType, graph.Ref(vocabulary.MetaProperty))
	}

	m.logger.Debug("ontology declared",
		"classes", len(classNames), "properties", len(props))

	return m
}

// Classes returns the declared class hierarchy (class -> superclass).
func (m *Manager) Classes() map[string]string {
	out := make(map[string]string, len(m.classes))
	for class, super := range m.classes {
		out[class] = super
	}
	return out
}

// Superclass returns the declared superclass of a class, if any.
func (m *Manager) Superclass(class string) (string, bool) {
	super, ok := m.classes[class]
	if !ok || super == "" {
		return "", false
	}
	return super, true
}

// IsSubclassOf reports whether class is ancestor or equal to itself under
// the declared hierarchy.
func (m *Manager) IsSubclassOf(class, ancestor string) bool {
	for class != "" {
		if class == ancestor {
			return true
		}
		super, ok := m.classes[class]
		if !ok {
			return false
		}
		class = super
	}
	return false
}

// Validate audits every type assertion in the store: the asserted class must
// be declared or be one of the meta-classes. It returns whether the store is
// consistent and the sorted list of undefined classes, each reported once.
// Validate is a read-only audit; it never mutates the store and never fails.
func (m *Manager) Validate() (bool, []string) {
	undefined := make(map[string]bool)

	for _, st := range m.store.Statements() {
		if st.Predicate != vocabulary.PredType || !st.Object.IsRef() {
			continue
		}
		class := st.Object.RefID()
		if _, declared := m.classes[class]; declared {
			continue
		}
		if vocabulary.IsMetaClass(class) {
			continue
		}
		undefined[class] = true
	}

	if len(undefined) == 0 {
		return true, nil
	}

	out := make([]string, 0, len(undefined))
	for class := range undefined {
		out = append(out, class)
	}
	sort.Strings(out)

	m.logger.Warn("ontology validation found undefined classes",
		"count", len(out), "classes", out)

	return false, out
}
