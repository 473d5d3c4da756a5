package main

import (
	"github.com/droidpack/html2apk/keystore"
)

// apktoolBuilder drives the decode/rebuild path: the configured template
// APK is taken apart, the page, icon and manifest are swapped in, and the
// tree is built back into an unsigned APK.
type apktoolBuilder struct {
	java       string
	apktoolJar string
}

func (b apktoolBuilder) decode(templateAPK, workDir string) error {
	return keystore.Execute([]string{b.java, "-jar", b.apktoolJar, "d", templateAPK, "-o", workDir, "-f"})
}

func (b apktoolBuilder) build(workDir, outPth string) error {
	return keystore.Execute([]string{b.java, "-jar", b.apktoolJar, "b", workDir, "-o", outPth})
}
