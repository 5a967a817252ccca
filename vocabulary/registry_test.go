package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorePredicatesRegistered(t *testing.T) {
	meta, ok := Lookup(PredDependsOn)
	require.True(t, ok)
	assert.True(t, meta.IsObjectProperty)
	assert.Equal(t, DcRequires, meta.StandardIRI)

	meta, ok = Lookup(PredMetricValue)
	require.True(t, ok)
	assert.False(t, meta.IsObjectProperty)
	assert.Equal(t, "float64", meta.DataType)
}

func TestObjectProperties(t *testing.T) {
	props := ObjectProperties()
	assert.Contains(t, props, PredImports)
	assert.Contains(t, props, PredDefines)
	assert.Contains(t, props, PredDependsOn)
	assert.Contains(t, props, PredContains)
	assert.Contains(t, props, PredHasMetric)
	assert.Contains(t, props, PredHasVulnerability)
	assert.NotContains(t, props, PredContent)
	assert.NotContains(t, props, PredMetricValue)
}

func TestClassHierarchy(t *testing.T) {
	classes := Classes()
	assert.Equal(t, ClassCodeEntity, classes[ClassFile])
	assert.Equal(t, ClassCodeEntity, classes[ClassFunction])
	assert.Equal(t, ClassCodeEntity, classes[ClassModule])
	assert.Equal(t, "", classes[ClassInsight])

	// Classes returns a copy; mutating it must not affect the vocabulary.
	classes["Widget"] = ""
	assert.False(t, IsDeclaredClass("Widget"))
}

func TestMetaClasses(t *testing.T) {
	assert.True(t, IsMetaClass(MetaClass))
	assert.True(t, IsMetaClass(MetaProperty))
	assert.False(t, IsMetaClass(ClassFile))
}

func TestPredicateIRI(t *testing.T) {
	assert.Equal(t, RDFType, PredicateIRI(PredType))
	assert.Equal(t, VocabNamespace+"#imports", PredicateIRI(PredImports))
	assert.Equal(t, "", PredicateIRI(""))
	assert.Equal(t, "", PredicateIRI("   "))
}

func TestEntityIRI(t *testing.T) {
	assert.Equal(t, EntityNamespace+"/file_main_go", EntityIRI("file_main_go"))
	assert.Equal(t, "", EntityIRI(""))
}

func TestRegisterOverride(t *testing.T) {
	Register("test.override", WithDescription("first"))
	Register("test.override", WithDescription("second"), WithDataType("string"))

	meta, ok := Lookup("test.override")
	require.True(t, ok)
	assert.Equal(t, "second", meta.Description)
	assert.Equal(t, "string", meta.DataType)
}
