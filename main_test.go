package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/partcheck/internal/config"
)

// runCLI runs the command line with quiet logging and no config from the
// environment.
func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	var out, errOut bytes.Buffer
	code = run(append([]string{"--log-level", "error"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

const coreCatalog = "testdata/registry/core/core.catalog.yaml"

// ---------------------------------------------------------------------------
// analyze
// ---------------------------------------------------------------------------

func TestAnalyze_Catalog(t *testing.T) {
	code, stdout, stderr := runCLI(t, "analyze", "--catalog", coreCatalog, "--verbose=false", "--no-color")
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, "Not satisfied:\n"+
		"Core.Services.IClipboard\n"+
		"\n"+
		"Unimplemented services:\n"+
		"Core.Services.IFormattingService\n"+
		"\n", stdout)
}

func TestAnalyze_VerboseIndex(t *testing.T) {
	code, stdout, stderr := runCLI(t, "analyze", "--catalog", coreCatalog, "--no-color")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "Core.Services.IFormattingService\nDefault\tCore.Services.DefaultFormattingService\n")
	assert.Contains(t, stdout, "Core.Services.ITextBufferService\nHost\tCore.Services.TextBufferFactory\n")
}

func TestAnalyze_Filter(t *testing.T) {
	code, stdout, stderr := runCLI(t, "analyze", "--catalog", coreCatalog, "--filter", "Core.Services.IText", "--no-color")
	require.Equal(t, 0, code, stderr)

	assert.NotContains(t, stdout, "Not satisfied:")
	assert.NotContains(t, stdout, "IFormattingService")
	assert.Contains(t, stdout, "Unimplemented services:\n\n")
	assert.Contains(t, stdout, "Core.Services.ITextBufferService\n")
}

func TestAnalyze_Mermaid(t *testing.T) {
	out := filepath.Join(t.TempDir(), "index.mmd")
	code, _, stderr := runCLI(t, "analyze", "--catalog", coreCatalog, "--mermaid", out, "--no-color")
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "%%{init:")
	assert.Contains(t, string(data), "classDiagram")
	assert.Contains(t, string(data), "i_Core_Services_DefaultFormattingService --|> c_Core_Services_IFormattingService")
	assert.Contains(t, string(data), `cssClass "c_Core_Services_IClipboard" missingStyle`)
}

func TestAnalyze_GoPackages(t *testing.T) {
	code, stdout, stderr := runCLI(t, "analyze",
		"--config", "testdata/hostsvc/partcheck.yaml",
		"--catalog", "testdata/hostsvc/catalog.yaml",
		"--packages", "testdata/hostsvc",
		"--verbose=false", "--no-color")
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, "Not satisfied:\n"+
		"example.com/hostsvc/services.Clock\n"+
		"\n"+
		"Unimplemented services:\n"+
		"example.com/hostsvc/services.Cache\n"+
		"example.com/hostsvc/services.Formatter\n"+
		"\n", stdout)
}

func TestAnalyze_RegistryEnabledAddins(t *testing.T) {
	code, stdout, stderr := runCLI(t, "analyze", "--registry", "testdata/registry/registry.yaml", "--verbose=false", "--no-color")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "Core.Services.IClipboard\n")
	assert.NotContains(t, stdout, "FSharp")
}

func TestAnalyze_NoInput(t *testing.T) {
	code, stdout, stderr := runCLI(t, "analyze")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no add-in registry configured")
}

func TestAnalyze_MissingCatalogFile(t *testing.T) {
	code, _, stderr := runCLI(t, "analyze", "--catalog", "testdata/does-not-exist.yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "does-not-exist.yaml")
}

// ---------------------------------------------------------------------------
// graph
// ---------------------------------------------------------------------------

func TestGraph_NoAddinIDs(t *testing.T) {
	code, stdout, stderr := runCLI(t, "graph", "--registry", "testdata/registry/registry.yaml")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no add-in ids given")
	assert.Contains(t, stderr, "Usage:")
	assert.Contains(t, stderr, "graph <addin-id>...")
}

func TestGraph_LoadsAddins(t *testing.T) {
	code, stdout, stderr := runCLI(t, "graph", "FSharp.Binding", "--registry", "testdata/registry/registry.yaml", "--verbose=false", "--no-color")
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, "Not satisfied:\n"+
		"Core.Services.IClipboard\n"+
		"FSharp.Services.IProjectOptionsProvider\n"+
		"\n"+
		"Unimplemented services:\n"+
		"Core.Services.ICodeFixService\n"+
		"Core.Services.IFormattingService\n"+
		"\n", stdout)
}

func TestGraph_LoadFailureIsNotFatal(t *testing.T) {
	code, stdout, stderr := runCLI(t, "graph", "Missing.Addin", "No.Such.Addin", "FSharp.Binding",
		"--registry", "testdata/registry/registry.yaml", "--verbose=false", "--no-color")
	require.Equal(t, 0, code)

	assert.Contains(t, stdout, "FSharp.Services.IProjectOptionsProvider")
	assert.Contains(t, stderr, `"id":"Missing.Addin"`)
	assert.Contains(t, stderr, `"id":"No.Such.Addin"`)
}

func TestGraph_NoAddinLoads(t *testing.T) {
	registry := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(registry, []byte("addins:\n  - id: Only.Addin\n    location: does-not-exist\n"), 0o644))

	code, stdout, stderr := runCLI(t, "graph", "--registry", registry, "Only.Addin", "--no-color")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "Unimplemented services:\n\n", stdout)
	assert.Contains(t, stderr, `"id":"Only.Addin"`)
}

// ---------------------------------------------------------------------------
// global flags
// ---------------------------------------------------------------------------

func TestRun_InvalidLogLevel(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	var out, errOut bytes.Buffer
	code := run([]string{"--log-level", "loud", "analyze", "--catalog", coreCatalog}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "unknown log level")
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "analyze", "--bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown flag: --bogus")
	assert.Contains(t, stderr, "Usage:")
}

func TestRun_LogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "partcheck.log")
	code, _, stderr := runCLI(t, "--log-file", logFile, "--log-level", "info", "analyze", "--catalog", coreCatalog)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"analysis complete"`)
}

func TestRun_ConfigFromEnvironment(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "testdata/hostsvc/partcheck.yaml")
	var out, errOut bytes.Buffer
	code := run([]string{"--log-level", "error", "analyze",
		"--catalog", "testdata/hostsvc/catalog.yaml", "--packages", "testdata/hostsvc",
		"--verbose=false", "--no-color"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "example.com/hostsvc/services.Formatter\n")
}
