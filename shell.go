package main

import (
	_ "embed"
)

// The embedded shell is a single WebView activity that loads
// assets/www/index.html. Its manifest is the template every build
// patches before packaging.

//go:embed shell/AndroidManifest.xml
var shellManifest string

//go:embed shell/MainActivity.java
var shellActivitySource string

// shellPackage is the package the shell sources are compiled under. The
// manifest's activity reference is absolutized against it, so renaming the
// application package cannot break the component lookup.
const shellPackage = "com.droidpack.shell"
