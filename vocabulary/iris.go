package vocabulary

import (
	"fmt"
	"strings"
)

// Base IRI constants for the SemKG vocabulary
const (
	SemKGBase       = "https://semkg.c360.io"
	VocabNamespace  = SemKGBase + "/vocab"
	EntityNamespace = SemKGBase + "/entity"
)

// Standard W3C/RDF vocabulary IRIs used in predicate registrations and export.
const (
	RDFType        = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFSSubClassOf = "http://www.w3.org/2000/01/rdf-schema#subClassOf"
	RDFSLabel      = "http://www.w3.org/2000/01/rdf-schema#label"

	DcRequires   = "http://purl.org/dc/terms/requires"
	DcRelation   = "http://purl.org/dc/terms/relation"
	DcReferences = "http://purl.org/dc/terms/references"

	ProvHadMember = "http://www.w3.org/ns/prov#hadMember"
	SchemaAbout   = "http://schema.org/about"
)

// XSD datatype IRI fragments used as literal datatype tags in export.
const (
	XSDString   = "xsd:string"
	XSDDouble   = "xsd:double"
	XSDBoolean  = "xsd:boolean"
	XSDDateTime = "xsd:dateTime"
)

// PredicateIRI returns the export IRI for a predicate. Predicates registered
// with a standard IRI map to it; everything else lands in the SemKG vocab
// namespace.
//
// Returns empty string for empty input.
func PredicateIRI(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	if meta, ok := Lookup(name); ok && meta.StandardIRI != "" {
		return meta.StandardIRI
	}

	return fmt.Sprintf("%s#%s", VocabNamespace, name)
}

// EntityIRI returns the export IRI for an entity or class identifier.
//
// Returns empty string for empty input.
func EntityIRI(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", EntityNamespace, id)
}
