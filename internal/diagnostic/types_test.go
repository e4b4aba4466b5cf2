package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Collect(t *testing.T) {
	var d Diagnostics

	assert.Equal(t, 0, d.Len())
	assert.Empty(t, d.All())

	d.Note(CodeNullLeaf, "AddressWsDTO", "extra", "null mapped as an empty object")
	d.Warn(CodeArrayUnsupported, "AddressWsDTO", "phones", "array fields are not supported")
	d.Add(Diagnostic{
		Severity:    SeverityWarning,
		Code:        CodeUnknownTag,
		Message:     `unknown type tag "strng"`,
		Entity:      "AddressWsDTO",
		FieldPath:   "owner.firstName",
		Suggestions: []string{"string"},
	})

	assert.Equal(t, 3, d.Len())
	require.Len(t, d.Warnings, 2)
	require.Len(t, d.Infos, 1)

	all := d.All()
	assert.Equal(t, "phones", all[0].FieldPath)
	assert.Equal(t, "owner.firstName", all[1].FieldPath)
	assert.Equal(t, SeverityInfo, all[2].Severity)
}

func TestDiagnostics_Formats(t *testing.T) {
	var d Diagnostics

	d.Warn(CodeUnknownTag, "CityWsDTO", "zip", "unknown type tag %q", "strng")
	assert.Equal(t, `unknown type tag "strng"`, d.Warnings[0].Message)
}

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name     string
		diag     Diagnostic
		expected string
	}{
		{
			name:     "message only",
			diag:     Diagnostic{Message: "hello"},
			expected: "hello",
		},
		{
			name:     "with code and path",
			diag:     Diagnostic{Code: CodeArrayUnsupported, Message: "dropped", FieldPath: "tags"},
			expected: "tags: [array-unsupported] dropped",
		},
		{
			name:     "entity only",
			diag:     Diagnostic{Message: "dropped", Entity: "CityWsDTO"},
			expected: "[CityWsDTO]: dropped",
		},
		{
			name: "with suggestions",
			diag: Diagnostic{
				Code:        CodeUnknownTag,
				Message:     "unknown tag",
				Entity:      "AddressWsDTO",
				FieldPath:   "zip",
				Suggestions: []string{"string", "number"},
			},
			expected: "[AddressWsDTO] zip: [unknown-tag] unknown tag (did you mean string, number?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.diag.String())
		})
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "unknown", Severity(9).String())
	assert.Equal(t, "unknown", Severity(-1).String())
}
