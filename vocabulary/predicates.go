package vocabulary

// Core predicates used by every statement producer.
const (
	// PredType asserts the class of an entity (rdf:type equivalent).
	PredType = "type"
	// PredName is the human-readable name an entity was registered under.
	PredName = "name"
	// PredSubClassOf links a class to its superclass (rdfs:subClassOf equivalent).
	PredSubClassOf = "subclass_of"
)

// Object properties: directed relationships between entities. These form the
// valid relationship vocabulary validated by the ontology manager.
const (
	// PredImports says the subject imports the object module.
	PredImports = "imports"
	// PredDefines says the subject defines the object (file defines module, etc.).
	PredDefines = "defines"
	// PredDependsOn is the inferred dependency relationship.
	PredDependsOn = "depends_on"
	// PredContains is hierarchical containment (file contains function).
	PredContains = "contains"
	// PredHasMetric links an entity to one of its metric nodes.
	PredHasMetric = "has_metric"
	// PredHasVulnerability links an entity to one of its vulnerability findings.
	PredHasVulnerability = "has_vulnerability"
	// PredRelatedTo is the general association used to link insights to entities.
	PredRelatedTo = "related_to"
	// PredTarget links an annotated relationship node to its object entity.
	PredTarget = "target"
)

// Metric predicates attached to metric statement-nodes.
const (
	// PredMetricName is string, the metric name (e.g. "complexity", "coverage").
	PredMetricName = "metric_name"
	// PredMetricValue is float64, the recorded measurement.
	PredMetricValue = "metric_value"
	// PredTimestamp is an ISO-8601 timestamp, when the fact was recorded.
	PredTimestamp = "timestamp"
)

// Vulnerability predicates attached to vulnerability entities.
const (
	// PredSeverity is string, one of the scanner's severity labels.
	PredSeverity = "severity"
	// PredTitle is string, the short finding title.
	PredTitle = "title"
	// PredDescription is string, the full finding description.
	PredDescription = "description"
	// PredConfidence is float64 in [0,1], assertion reliability.
	PredConfidence = "confidence"
)

// Insight predicates attached to insight entities.
const (
	// PredContent is string, the free-text body of an insight.
	PredContent = "content"
	// PredCategory is string, the insight's category label.
	PredCategory = "category"
	// PredSessionID is string, the originating session identifier.
	PredSessionID = "session_id"
)

// Derived predicates written by the inference rules.
const (
	// PredRiskLevel is string, one of "high", "medium", "low".
	PredRiskLevel = "risk_level"
)

// ObjectProperties returns the names of all registered object properties,
// the valid relationship vocabulary between entities.
func ObjectProperties() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	props := make([]string, 0, len(predicateRegistry))
	for name, meta := range predicateRegistry {
		if meta.IsObjectProperty {
			props = append(props, name)
		}
	}
	return props
}
