// Package errors provides standardized error handling for SemKG.
//
// Errors are classified into three classes that drive handling policy:
//
//   - Transient: may succeed on retry (storage briefly unavailable)
//   - Invalid: caller error, retrying will not help (malformed query pattern)
//   - Fatal: unrecoverable, processing must stop (invalid configuration)
//
// The wrap helpers produce errors in the canonical form
// "component.method: action failed: <cause>" so log lines and error chains
// stay uniform across packages:
//
//	if err := store.Load(path); err != nil {
//	    return errors.WrapTransient(err, "Store", "Load", "reading statement file")
//	}
//
// All wrapped errors remain compatible with errors.Is and errors.As.
package errors
