package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatchShellManifest(t *testing.T) {
	patched := patchShellManifest(shellManifest, manifestValues{
		Package:     "com.example.page",
		VersionName: "v2.0",
		Label:       "My Page",
	})

	require.Contains(t, patched, `package="com.example.page"`)
	require.NotContains(t, patched, `package="com.droidpack.shell"`)
	require.Contains(t, patched, `android:versionName="v2.0"`)
	require.Contains(t, patched, `android:label="My Page"`)
	require.Contains(t, patched, `<uses-sdk android:minSdkVersion="21" android:targetSdkVersion="33" />`)
	require.Contains(t, patched, `<uses-permission android:name="android.permission.INTERNET" />`)
	require.Contains(t, patched, `android:icon="@mipmap/ic_launcher"`)
	require.Contains(t, patched, `android:theme="@style/AppTheme"`)
	require.Contains(t, patched, `android:exported="true"`)
	require.Contains(t, patched, `android:name="com.droidpack.shell.MainActivity"`)
	require.NotContains(t, patched, `android:name=".MainActivity"`)
}

func TestSetVersionName(t *testing.T) {
	t.Log("replaces an existing versionName")
	{
		xml := `<manifest android:versionName="1.0" package="a.b"><application /></manifest>`
		patched := setVersionName(xml, "v3.1")
		require.Contains(t, patched, `android:versionName="v3.1"`)
		require.NotContains(t, patched, `android:versionName="1.0"`)
	}

	t.Log("injects versionName into the manifest tag when absent")
	{
		xml := `<manifest package="a.b"><application /></manifest>`
		patched := setVersionName(xml, "v3.1")
		require.True(t, strings.HasPrefix(patched, `<manifest android:versionName="v3.1" package="a.b">`))
	}
}

func TestSetPackage(t *testing.T) {
	t.Log("only the first package attribute is touched")
	{
		xml := `<manifest package="a.b"><queries package="other.app" /></manifest>`
		patched := setPackage(xml, "c.d")
		require.Contains(t, patched, `package="c.d"`)
		require.Contains(t, patched, `package="other.app"`)
	}
}

func TestEnsureInternetPermission(t *testing.T) {
	xml := `<manifest package="a.b">
    <application android:label="x" />
</manifest>`

	patched := ensureInternetPermission(xml)
	require.Contains(t, patched, `<uses-permission android:name="android.permission.INTERNET" />`)

	t.Log("applying it twice adds nothing")
	{
		require.Equal(t, patched, ensureInternetPermission(patched))
	}
}

func TestForceAppTheme(t *testing.T) {
	t.Log("adds the attribute when absent")
	{
		patched := forceAppTheme(`<application android:label="x">`)
		require.Contains(t, patched, `<application android:theme="@style/AppTheme" android:label="x">`)
	}

	t.Log("replaces an existing theme")
	{
		patched := forceAppTheme(`<application android:theme="@style/Other" android:label="x">`)
		require.Contains(t, patched, `android:theme="@style/AppTheme"`)
		require.NotContains(t, patched, "@style/Other")
	}
}

func TestExportFirstActivity(t *testing.T) {
	t.Log("marks the intent-filtered activity exported")
	{
		xml := `<activity android:name=".MainActivity"><intent-filter></intent-filter></activity>`
		patched := exportFirstActivity(xml)
		require.Contains(t, patched, `<activity android:name=".MainActivity" android:exported="true">`)
	}

	t.Log("leaves activities without intent filters alone")
	{
		xml := `<activity android:name=".MainActivity"></activity>`
		require.Equal(t, xml, exportFirstActivity(xml))
	}

	t.Log("does not double-export")
	{
		xml := `<activity android:name=".MainActivity" android:exported="true"><intent-filter></intent-filter></activity>`
		require.Equal(t, xml, exportFirstActivity(xml))
	}
}

func TestSetLabelEscapesXML(t *testing.T) {
	patched := setLabel(`<application android:label="WebShell">`, `Tom & "Jerry" <3`)
	require.Contains(t, patched, `android:label="Tom &amp; &quot;Jerry&quot; &lt;3"`)
}

func TestPatchDecodedManifest(t *testing.T) {
	xml := `<manifest package="com.vendor.template" android:versionName="0.1">
    <application android:icon="@mipmap/ic_launcher" android:label="Template">
        <activity android:name="com.vendor.template.MainActivity" android:exported="true" />
    </application>
</manifest>`

	patched := patchDecodedManifest(xml, manifestValues{Package: "com.example.page", VersionName: "v2.0"})
	require.Contains(t, patched, `package="com.example.page"`)
	require.Contains(t, patched, `android:versionName="v2.0"`)
	require.Contains(t, patched, "android.permission.INTERNET")

	t.Log("the template's icon attribute is kept, not duplicated")
	{
		require.Equal(t, 1, strings.Count(patched, "android:icon="))
	}
}
