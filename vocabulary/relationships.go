package vocabulary

// Predicate registration with metadata and IRI mappings. This file registers
// the statement vocabulary with semantic metadata and standard vocabulary
// mappings used during RDF export.

func init() {
	// Core predicates
	Register(PredType,
		WithDescription("Class assertion (entity is an instance of class)"),
		WithObjectProperty(),
		WithIRI(RDFType))

	Register(PredName,
		WithDescription("Name the entity was registered under"),
		WithDataType("string"),
		WithIRI(RDFSLabel))

	Register(PredSubClassOf,
		WithDescription("Class hierarchy link (class is a subclass of superclass)"),
		WithObjectProperty(),
		WithIRI(RDFSSubClassOf))

	// Object properties
	Register(PredImports,
		WithDescription("Subject imports the object module"),
		WithObjectProperty())

	Register(PredDefines,
		WithDescription("Subject defines the object (file defines module)"),
		WithObjectProperty())

	Register(PredDependsOn,
		WithDescription("Dependency relationship (subject depends on object)"),
		WithObjectProperty(),
		WithIRI(DcRequires))

	Register(PredContains,
		WithDescription("Hierarchical containment (parent contains child)"),
		WithObjectProperty(),
		WithIRI(ProvHadMember))

	Register(PredHasMetric,
		WithDescription("Links an entity to one of its metric nodes"),
		WithObjectProperty())

	Register(PredHasVulnerability,
		WithDescription("Links an entity to one of its vulnerability findings"),
		WithObjectProperty())

	Register(PredRelatedTo,
		WithDescription("General association relationship"),
		WithObjectProperty(),
		WithIRI(DcRelation))

	Register(PredTarget,
		WithDescription("Links an annotated relationship node to its object"),
		WithObjectProperty(),
		WithIRI(DcReferences))

	// Metric literals
	Register(PredMetricName,
		WithDescription("Metric name"),
		WithDataType("string"))

	Register(PredMetricValue,
		WithDescription("Recorded measurement value"),
		WithDataType("float64"))

	Register(PredTimestamp,
		WithDescription("When the fact was recorded"),
		WithDataType("time.Time"))

	// Vulnerability literals
	Register(PredSeverity,
		WithDescription("Finding severity label"),
		WithDataType("string"))

	Register(PredTitle,
		WithDescription("Short finding title"),
		WithDataType("string"))

	Register(PredDescription,
		WithDescription("Full finding description"),
		WithDataType("string"))

	Register(PredConfidence,
		WithDescription("Assertion reliability in [0,1]"),
		WithDataType("float64"))

	// Insight literals
	Register(PredContent,
		WithDescription("Free-text body of an insight"),
		WithDataType("string"))

	Register(PredCategory,
		WithDescription("Insight category label"),
		WithDataType("string"))

	Register(PredSessionID,
		WithDescription("Originating session identifier"),
		WithDataType("string"))

	// Derived
	Register(PredRiskLevel,
		WithDescription("Derived risk classification: high, medium or low"),
		WithDataType("string"))
}
