package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	pth := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(pth, []byte(content), 0600))
	return pth
}

func TestHTMLTitle(t *testing.T) {
	t.Log("reads the title")
	{
		pth := writeTestFile(t, "index.html",
			`<html><head><title>  My App  </title></head><body></body></html>`)
		title, err := htmlTitle(pth)
		require.NoError(t, err)
		require.Equal(t, "My App", title)
	}

	t.Log("empty when the page has no title")
	{
		pth := writeTestFile(t, "index.html", `<html><body><h1>hi</h1></body></html>`)
		title, err := htmlTitle(pth)
		require.NoError(t, err)
		require.Equal(t, "", title)
	}

	t.Log("skips an empty title element")
	{
		pth := writeTestFile(t, "index.html",
			`<html><head><title>   </title></head><body></body></html>`)
		title, err := htmlTitle(pth)
		require.NoError(t, err)
		require.Equal(t, "", title)
	}

	t.Log("tolerates sloppy markup")
	{
		pth := writeTestFile(t, "index.html", `<title>Bare Page`)
		title, err := htmlTitle(pth)
		require.NoError(t, err)
		require.Equal(t, "Bare Page", title)
	}
}
