package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testManifestXML = `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.example.page" android:versionCode="1" android:versionName="v2.0">
	<application android:label="My Page">
		<activity android:name="com.droidpack.shell.MainActivity" android:exported="true"/>
	</application>
</manifest>`

func TestAPKIdentityFromManifest(t *testing.T) {
	identity, err := apkIdentityFromManifest([]byte(testManifestXML))
	require.NoError(t, err)
	require.Equal(t, "com.example.page", identity.Package)
	require.Equal(t, "v2.0", identity.VersionName)
}

func TestCheckAPKIdentity(t *testing.T) {
	identity := apkIdentity{Package: "com.example.page", VersionName: "v2.0"}

	require.NoError(t, checkAPKIdentity(identity, manifestValues{Package: "com.example.page", VersionName: "v2.0"}))

	t.Log("package mismatch")
	{
		err := checkAPKIdentity(identity, manifestValues{Package: "com.other.app", VersionName: "v2.0"})
		require.Error(t, err)
	}

	t.Log("versionName mismatch")
	{
		err := checkAPKIdentity(identity, manifestValues{Package: "com.example.page", VersionName: "v1.0"})
		require.Error(t, err)
	}

	t.Log("an empty read-back versionName is tolerated")
	{
		identity := apkIdentity{Package: "com.example.page"}
		require.NoError(t, checkAPKIdentity(identity, manifestValues{Package: "com.example.page", VersionName: "v2.0"}))
	}
}
