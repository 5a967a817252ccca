package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapFormatsContext(t *testing.T) {
	base := stderrors.New("boom")
	err := Wrap(base, "Store", "Query", "pattern matching")
	require.Error(t, err)
	assert.Equal(t, "Store.Query: pattern matching failed: boom", err.Error())
	assert.True(t, stderrors.Is(err, base))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "Store", "Query", "anything"))
	assert.NoError(t, WrapInvalid(nil, "Store", "Query", "anything"))
	assert.NoError(t, WrapTransient(nil, "Store", "Query", "anything"))
	assert.NoError(t, WrapFatal(nil, "Store", "Query", "anything"))
}

func TestClassification(t *testing.T) {
	invalid := WrapInvalid(ErrInvalidPattern, "Store", "Query", "validating pattern")
	assert.True(t, IsInvalid(invalid))
	assert.False(t, IsFatal(invalid))
	assert.Equal(t, ErrorInvalid, Classify(invalid))

	fatal := WrapFatal(ErrInvalidConfig, "Bridge", "New", "validating config")
	assert.True(t, IsFatal(fatal))
	assert.Equal(t, ErrorFatal, Classify(fatal))

	transient := WrapTransient(ErrStorageUnavailable, "Store", "Load", "opening file")
	assert.True(t, IsTransient(transient))
	assert.Equal(t, ErrorTransient, Classify(transient))
}

func TestSentinelClassification(t *testing.T) {
	// Bare sentinels classify without wrapping.
	assert.True(t, IsInvalid(ErrUnsupportedValue))
	assert.True(t, IsInvalid(ErrUnsupportedFormat))
	assert.True(t, IsFatal(ErrMissingConfig))
	assert.True(t, IsTransient(ErrStorageUnavailable))
}

func TestClassifiedErrorUnwrap(t *testing.T) {
	err := WrapInvalid(ErrInvalidPattern, "Store", "Query", "empty where clause")

	var ce *ClassifiedError
	require.True(t, stderrors.As(err, &ce))
	assert.Equal(t, "Store", ce.Component)
	assert.Equal(t, "Query", ce.Operation)
	assert.True(t, stderrors.Is(ce.Unwrap(), ErrInvalidPattern))
}

func TestErrorClassString(t *testing.T) {
	assert.Equal(t, "transient", ErrorTransient.String())
	assert.Equal(t, "invalid", ErrorInvalid.String())
	assert.Equal(t, "fatal", ErrorFatal.String())
	assert.Equal(t, "unknown", ErrorClass(99).String())
}
