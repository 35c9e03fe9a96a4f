package xmlavro

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeStructuralAmbiguity reports several tree values where the schema
	// expects exactly one (an array was probably needed in the schema). Fatal.
	CodeStructuralAmbiguity = "structural_ambiguity"
	// CodeMalformedScalar reports scalar text that cannot be parsed as the
	// target primitive. Fatal.
	CodeMalformedScalar = "malformed_scalar"
	// CodeUnschematizedField reports a tree field with no schema slot. The
	// field is dropped. Non-fatal.
	CodeUnschematizedField = "unschematized_field"
	// CodeUnsupportedCoercion reports a schema kind with no coercion rule at
	// a primitive position. The field is omitted. Non-fatal.
	CodeUnsupportedCoercion = "unsupported_coercion"
	// CodeNullCoercion reports a field resolved to the null branch of a
	// union, usually because no branch matched. Possible data loss. Non-fatal.
	CodeNullCoercion = "null_coercion"
	// CodeParseError reports malformed schema or markup input.
	CodeParseError = "parse_error"
)

// Issue represents a single conversion entry.
type Issue struct {
	Path    string // Slash-joined field path (for example: /POSLog/Transaction/total).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

// Issues is a collection of conversion errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. structural_ambiguity at /POSLog/Transaction
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

func (iss Issues) Unwrap() []error {
	errs := make([]error, 0, len(iss))
	for _, it := range iss {
		if it.Cause != nil {
			errs = append(errs, it.Cause)
		}
	}
	return errs
}

// IssueAt creates an Issue at the given path with provided code and message.
// This is a convenience helper to improve readability at call sites.
func IssueAt(path, code, msg string) Issue {
	return Issue{Path: path, Code: code, Message: msg}
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
