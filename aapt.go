package main

import (
	"path/filepath"

	"github.com/bitrise-io/go-utils/command"
	"github.com/bitrise-io/go-utils/errorutil"
	"github.com/bitrise-io/go-utils/log"
	"github.com/droidpack/html2apk/keystore"
)

type aaptPackager struct {
	aapt       string
	androidJar string
}

// packageAPK builds the unsigned APK from the patched manifest, the staged
// assets and the generated res tree. When aapt rejects the res tree the
// packaging is retried once without it, trading the launcher icon for a
// usable APK.
func (p aaptPackager) packageAPK(manifestPth, assetsDir, resDir, outPth string) error {
	cmdSlice := []string{
		p.aapt, "package", "-f",
		"-M", manifestPth,
		"-I", p.androidJar,
		"-A", assetsDir,
		"-S", resDir,
		"-F", outPth,
	}
	log.Printf("=> %s", command.PrintableCommandArgs(false, cmdSlice))

	out, err := keystore.ExecuteForOutput(cmdSlice)
	if err == nil {
		return nil
	}
	if !errorutil.IsExitStatusError(err) {
		return err
	}

	log.Warnf("Resource packaging failed, retrying without res (the launcher icon will not apply)")
	log.Debugf("aapt output: %s", out)

	cmdSlice = []string{
		p.aapt, "package", "-f",
		"-M", manifestPth,
		"-I", p.androidJar,
		"-A", assetsDir,
		"-F", outPth,
	}
	log.Printf("=> %s", command.PrintableCommandArgs(false, cmdSlice))

	out, err = keystore.ExecuteForOutput(cmdSlice)
	if err != nil {
		return properError(err, out)
	}
	return nil
}

// addClassesDex appends classes.dex to the APK. aapt stores entries under
// the path it was given, so the command runs from the dex directory to get
// the entry rooted at classes.dex instead of an absolute path.
func (p aaptPackager) addClassesDex(apkPth, classesDex string) error {
	cmdSlice := []string{p.aapt, "add", apkPth, "classes.dex"}
	log.Printf("=> %s", command.PrintableCommandArgs(false, cmdSlice))

	cmd := command.New(cmdSlice[0], cmdSlice[1:]...)
	cmd.SetDir(filepath.Dir(classesDex))
	out, err := cmd.RunAndReturnTrimmedCombinedOutput()
	if err != nil {
		return properError(err, out)
	}
	return nil
}
