// Package vocabulary defines the fixed semantic vocabulary of the knowledge
// graph: the entity-class hierarchy, the predicate names used in statements,
// and their mappings to standard W3C/RDF IRIs for export.
//
// The vocabulary is declared once at package initialization and is not
// mutated at runtime. The ontology package audits the store against the
// class hierarchy declared here; the graph package uses the predicate
// constants when writing statements so the vocabulary stays consistent
// across the system.
//
// Predicates carry optional metadata (description, expected data type,
// standard IRI) registered through functional options:
//
//	Register(PredDependsOn,
//	    WithDescription("Dependency relationship (subject depends on object)"),
//	    WithObjectProperty(),
//	    WithIRI(DcRequires))
package vocabulary
