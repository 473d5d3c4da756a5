package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadArgsFileOverlaysPresentKeysOnly(t *testing.T) {
	pth := writeTestFile(t, "args.yaml", `
html: page.html
pkg: com.example.page
version: v9.9
`)

	cfg := defaultConfigs()
	require.NoError(t, loadArgsFile(pth, &cfg))

	require.Equal(t, "page.html", cfg.HTMLPath)
	require.Equal(t, "com.example.page", cfg.Package)
	require.Equal(t, "v9.9", cfg.Version)

	t.Log("keys missing from the file keep their defaults")
	{
		require.Equal(t, "icon.png", cfg.IconPath)
		require.Equal(t, "apktool.jar", cfg.ApktoolJar)
	}
}

func TestParseFlagsOverridesConfig(t *testing.T) {
	cfg := defaultConfigs()
	cfg.Package = "com.from.yaml"

	require.NoError(t, parseFlags(&cfg, []string{"-pkg", "com.from.flag", "-verbose"}))
	require.Equal(t, "com.from.flag", cfg.Package)
	require.True(t, cfg.Verbose)

	t.Log("untouched flags keep the layered value")
	{
		require.Equal(t, "index.html", cfg.HTMLPath)
	}
}

func TestParseFlagsRejectsUnknownFlag(t *testing.T) {
	cfg := defaultConfigs()
	require.Error(t, parseFlags(&cfg, []string{"-bogus"}))
}

func TestValidatePackageName(t *testing.T) {
	html := writeTestFile(t, "index.html", "<html></html>")
	icon := writeTestFile(t, "icon.png", "not really a png")

	cfg := configs{HTMLPath: html, IconPath: icon}

	for _, pkg := range []string{"com.example", "com.example.app", "a.b_c.d2"} {
		cfg.Package = pkg
		require.NoError(t, cfg.validate(), pkg)
	}

	for _, pkg := range []string{"", "com", "Com.Example", "com..app", "1com.example", "com.example."} {
		cfg.Package = pkg
		require.Error(t, cfg.validate(), pkg)
	}
}

func TestValidateMissingInputs(t *testing.T) {
	icon := writeTestFile(t, "icon.png", "x")

	t.Log("missing HTML")
	{
		cfg := configs{HTMLPath: "no/such/page.html", IconPath: icon, Package: "com.example.app"}
		require.Error(t, cfg.validate())
	}

	t.Log("missing icon")
	{
		html := writeTestFile(t, "index.html", "<html></html>")
		cfg := configs{HTMLPath: html, IconPath: "no/such/icon.png", Package: "com.example.app"}
		require.Error(t, cfg.validate())
	}
}
