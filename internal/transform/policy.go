package transform

import (
	"fmt"
	"strings"
)

// OmitPolicy decides what the object mapper does with omitted values.
type OmitPolicy int

const (
	// OmitDrop removes the key from the output object.
	OmitDrop OmitPolicy = iota
	// OmitNull keeps the key with a null value.
	OmitNull
	// OmitError aborts the transform with ErrOmitted.
	OmitError
)

var omitPolicyNames = map[OmitPolicy]string{
	OmitDrop:  "drop",
	OmitNull:  "null",
	OmitError: "error",
}

// String returns the policy name as used in configuration files.
func (p OmitPolicy) String() string {
	if name, ok := omitPolicyNames[p]; ok {
		return name
	}

	return "unknown"
}

// ParseOmitPolicy parses a policy name. The empty string selects OmitDrop.
func ParseOmitPolicy(s string) (OmitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "drop":
		return OmitDrop, nil
	case "null":
		return OmitNull, nil
	case "error":
		return OmitError, nil
	default:
		return OmitDrop, fmt.Errorf("unknown omit policy %q (want drop, null or error)", s)
	}
}

// NullPolicy decides how null schema values are treated.
type NullPolicy int

const (
	// NullAsObject maps null like an object without keys, yielding {}.
	NullAsObject NullPolicy = iota
	// NullPassThrough keeps null as a scalar.
	NullPassThrough
)

// String returns the policy name as used in configuration files.
func (p NullPolicy) String() string {
	switch p {
	case NullAsObject:
		return "object"
	case NullPassThrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// ParseNullPolicy parses a policy name. The empty string selects
// NullAsObject.
func ParseNullPolicy(s string) (NullPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "object":
		return NullAsObject, nil
	case "passthrough":
		return NullPassThrough, nil
	default:
		return NullAsObject, fmt.Errorf("unknown null policy %q (want object or passthrough)", s)
	}
}
