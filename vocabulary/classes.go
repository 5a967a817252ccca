package vocabulary

// Entity class names. These are the only valid objects of type assertions;
// the ontology manager flags anything else as undefined.
const (
	// ClassCodeEntity is the abstract superclass of all code-derived entities.
	ClassCodeEntity = "CodeEntity"
	// ClassFile is a source file.
	ClassFile = "File"
	// ClassFunction is a function or method.
	ClassFunction = "Function"
	// ClassClass is a class or type definition in source code.
	ClassClass = "Class"
	// ClassModule is an importable module or package.
	ClassModule = "Module"

	// ClassAgent is an orchestration agent registered by the surrounding system.
	ClassAgent = "Agent"
	// ClassInsight is an externally supplied discovery record synced into the graph.
	ClassInsight = "Insight"
	// ClassMetric is a time-stamped measurement attached to an entity.
	ClassMetric = "Metric"
	// ClassVulnerability is a security finding scoped to an entity.
	ClassVulnerability = "Vulnerability"
	// ClassRelationship is the auxiliary statement-node class used for
	// relationships that carry their own properties.
	ClassRelationship = "Relationship"
)

// Meta-classes. Objects of type assertions naming these are always accepted
// during ontology validation; they describe the vocabulary itself.
const (
	MetaClass    = "Class"
	MetaProperty = "Property"
)

// classHierarchy maps each declared class to its superclass. Root classes
// map to the empty string.
var classHierarchy = map[string]string{
	ClassCodeEntity:    "",
	ClassFile:          ClassCodeEntity,
	ClassFunction:      ClassCodeEntity,
	ClassClass:         ClassCodeEntity,
	ClassModule:        ClassCodeEntity,
	ClassAgent:         "",
	ClassInsight:       "",
	ClassMetric:        "",
	ClassVulnerability: "",
	ClassRelationship:  "",
}

// Classes returns a copy of the declared class hierarchy (class -> superclass).
func Classes() map[string]string {
	out := make(map[string]string, len(classHierarchy))
	for class, super := range classHierarchy {
		out[class] = super
	}
	return out
}

// IsDeclaredClass reports whether name is a declared entity class.
// Meta-classes are not entity classes; check IsMetaClass separately.
func IsDeclaredClass(name string) bool {
	_, ok := classHierarchy[name]
	return ok
}

// IsMetaClass reports whether name is one of the vocabulary meta-classes.
func IsMetaClass(name string) bool {
	return name == MetaClass || name == MetaProperty
}
