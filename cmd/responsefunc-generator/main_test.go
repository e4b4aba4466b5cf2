package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"responsefunc-generator/internal/classify"
	"responsefunc-generator/internal/config"
	"responsefunc-generator/internal/converter"
)

const addressSchema = `{
  "firstName": "string",
  "zip": "string",
  "country": "$ref-CountryWsDTO",
  "tags": ["string"]
}`

const addressTemplate = `<%# Code generated by responsefunc-generator. DO NOT EDIT. %>
<%# import CountryWsDTO %>
{
  "firstName": <%-JSON.stringify(faker.name.firstName());%>,
  "zip": <%-JSON.stringify(faker.address.zipCode());%>,
  "country": <%-importedCountryWsDTO();%>
}
`

func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}

	return 1
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "AddressWsDTO.json", addressSchema)
	out := filepath.Join(dir, "responses")

	var stdout, stderr bytes.Buffer

	err := run([]string{"generate", "--schema", schemaPath, "--out", out, "--allow", "AddressWsDTO"}, &stdout, &stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "AddressWsDTO.ejs"))
	require.NoError(t, err)
	assert.Equal(t, addressTemplate, string(data))
	assert.Contains(t, stderr.String(), "warning: [AddressWsDTO] tags: [array-unsupported]")
}

func TestGenerate_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "address.yaml", "city: string\nphones: [string]\n")
	cfgPath := writeFile(t, dir, "generator.yaml", "entities: [AddressWsDTO]\nomit: \"null\"\noutput_ext: .tpl\n")

	var stdout, stderr bytes.Buffer

	err := run([]string{
		"generate", "-s", schemaPath, "--name", "AddressWsDTO", "-c", cfgPath,
		"--out", dir, "--dry-run", "--indent", "0",
	}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "# "+filepath.Join(dir, "AddressWsDTO.tpl")+"\n"+
		"<%# Code generated by responsefunc-generator. DO NOT EDIT. %>\n"+
		`{"city":<%-JSON.stringify(faker.address.city());%>,"phones":null}`+"\n", stdout.String())

	_, err = os.Stat(filepath.Join(dir, "AddressWsDTO.tpl"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerate_Batch(t *testing.T) {
	dir := t.TempDir()
	address := writeFile(t, dir, "AddressWsDTO.json", `{"country": "$ref-CountryWsDTO"}`)
	country := writeFile(t, dir, "CountryWsDTO.jsonc", "{\n  // iso code\n  \"countryCode\": \"string\",\n}")

	var stdout, stderr bytes.Buffer

	err := run([]string{
		"generate", "-s", address, "-s", country, "--out", "tpl",
		"--allow", "AddressWsDTO,CountryWsDTO", "--dry-run",
	}, &stdout, &stderr)
	require.NoError(t, err)

	text := stdout.String()
	assert.Less(t, strings.Index(text, "CountryWsDTO.ejs"), strings.Index(text, "AddressWsDTO.ejs"))
	assert.Contains(t, text, `"countryCode": "CH"`)
}

func TestGenerate_Rejected(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "AddressWsDTO.json", addressSchema)

	var stdout, stderr bytes.Buffer

	err := run([]string{"generate", "--schema", schemaPath, "--out", dir}, &stdout, &stderr)
	require.ErrorIs(t, err, converter.ErrRejected)
	assert.Equal(t, 1, exitCode(err))

	err = run([]string{"generate", "--schema", schemaPath, "--allow", "AddressWsDTO"}, &stdout, &stderr)
	require.ErrorIs(t, err, converter.ErrRejected)
}

func TestGenerate_OmitError(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "AddressWsDTO.json", addressSchema)

	var stdout, stderr bytes.Buffer

	err := run([]string{
		"generate", "--schema", schemaPath, "--out", dir, "--allow", "AddressWsDTO", "--omit", "error",
	}, &stdout, &stderr)
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, err.Error(), "tags")
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"frobnicate"}},
		{"missing schema", []string{"generate", "--out", "x"}},
		{"unknown flag", []string{"generate", "--bogus"}},
		{"bad omit", []string{"generate", "-s", "a.json", "--omit", "keep"}},
		{"name with many schemas", []string{"generate", "-s", "a.json", "-s", "b.json", "--name", "A"}},
		{"bad color", []string{"generate", "-s", "a.json", "--color", "rainbow"}},
		{"negative indent", []string{"generate", "-s", "a.json", "--indent", "-1"}},
		{"classify without keys", []string{"classify"}},
		{"encode without path", []string{"encode"}},
		{"decode too many", []string{"decode", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			err := run(tt.args, &stdout, &stderr)
			require.Error(t, err)
			assert.Equal(t, 2, exitCode(err))
		})
	}
}

func TestGenerate_ConfigFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"missing file", filepath.Join(dir, "absent.yaml"), "absent.yaml"},
		{"malformed yaml", writeFile(t, dir, "broken.yaml", "entities: [A\n"), "broken.yaml"},
		{"unknown field", writeFile(t, dir, "unknown.yaml", "colour: red\n"), "colour"},
		{"bad policy", writeFile(t, dir, "policy.yaml", "omit: keep\n"), "keep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			err := run([]string{"generate", "-s", "a.json", "-c", tt.path}, &stdout, &stderr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, 2, exitCode(err))
		})
	}
}

func TestGenerate_PrintConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "generator.yaml", "entities: [AddressWsDTO]\nomit: \"null\"\n")

	var stdout, stderr bytes.Buffer

	require.NoError(t, run([]string{"generate", "-c", cfgPath, "--ext", ".tpl", "--print-config"}, &stdout, &stderr))

	cfg, err := config.Parse(stdout.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"AddressWsDTO"}, cfg.Entities)
	assert.Equal(t, "null", cfg.Omit)
	assert.Equal(t, ".tpl", cfg.OutputExt)
	assert.Equal(t, config.Default().Null, cfg.Null)

	stdout.Reset()
	err = run([]string{"generate", "--print-config", "--omit", "keep"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
	assert.Empty(t, stdout.String())
}

func TestHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer

	require.NoError(t, run([]string{"help"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Commands:")

	require.NoError(t, run([]string{"generate", "--help"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "--schema")
}

func TestClassify(t *testing.T) {
	var stdout, stderr bytes.Buffer

	require.NoError(t, run([]string{"classify", "firstName", "countryCode", "foo"}, &stdout, &stderr))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"firstName", "KindFirstName", "name.firstName"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"countryCode", "KindCountryCode", `"CH"`}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"foo", "KindWord", "lorem.word"}, strings.Fields(lines[2]))

	stdout.Reset()
	require.NoError(t, run([]string{"classify", "--expr", "city"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "<%-JSON.stringify(faker.address.city());%>")
}

func TestClassify_Rules(t *testing.T) {
	var stdout, stderr bytes.Buffer

	require.NoError(t, run([]string{"classify", "--rules"}, &stdout, &stderr))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, len(classify.Rules())+1)
	assert.Equal(t, []string{"1", "name", "first=KindFirstName,last=KindLastName,street=KindStreetName", "KindFullName"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"3", "zip|postal", "KindZipCode"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"-", "*", "KindWord"}, strings.Fields(lines[len(lines)-1]))

	err := run([]string{"classify", "--rules", "city"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestEncodeDecode(t *testing.T) {
	var stdout, stderr bytes.Buffer

	require.NoError(t, run([]string{"encode", "/api/users"}, &stdout, &stderr))
	assert.Equal(t, "L2FwaS91c2Vycw==\n", stdout.String())

	stdout.Reset()
	require.NoError(t, run([]string{"decode", "L2FwaS91c2Vycw=="}, &stdout, &stderr))
	assert.Equal(t, "/api/users\n", stdout.String())

	err := run([]string{"decode", "%%%"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestGenerate_Color(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "CityWsDTO.json", `{"city": "string", "size": 3}`)

	var plain, colored, stderr bytes.Buffer

	args := []string{"generate", "-s", schemaPath, "--out", dir, "--allow", "CityWsDTO", "--dry-run"}

	require.NoError(t, run(args, &plain, &stderr))
	assert.NotContains(t, plain.String(), "\x1b[")

	require.NoError(t, run(append(args, "--color", "always"), &colored, &stderr))
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, colored.String(), `"city"`)
}

func TestColorMode(t *testing.T) {
	var buf bytes.Buffer

	m, err := parseColorMode("auto")
	require.NoError(t, err)
	assert.False(t, m.enabled(&buf))

	m, err = parseColorMode("always")
	require.NoError(t, err)
	assert.True(t, m.enabled(&buf))

	_, err = parseColorMode("sometimes")
	assert.Error(t, err)
}

func TestGenerate_VerboseLogsJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "CityWsDTO.json", `{"city": "string"}`)

	var stdout, stderr bytes.Buffer

	err := run([]string{"generate", "-s", schemaPath, "--out", dir, "--allow", "CityWsDTO", "-v"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), `"msg":"converted schema"`)
	assert.Contains(t, stderr.String(), `"command":"generate"`)
	assert.FileExists(t, filepath.Join(dir, "CityWsDTO.ejs"))
}
