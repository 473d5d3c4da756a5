package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-steputils/stepconf"
	"github.com/bitrise-io/go-utils/command"
	"github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-utils/log"
	"github.com/bitrise-io/go-utils/pathutil"
	"github.com/droidpack/html2apk/keystore"
)

func failf(format string, v ...interface{}) {
	log.Errorf(format, v...)
	os.Exit(1)
}

func main() {
	cfg, err := resolveConfig(os.Args[1:])
	if err != nil {
		failf("Process config: %s", err)
	}

	stepconf.Print(cfg)
	log.SetEnableDebugLog(cfg.Verbose)
	fmt.Println()

	if err := cfg.validate(); err != nil {
		failf("Process config: failed to validate input: %s", err)
	}

	htmlPath, err := pathutil.AbsPath(cfg.HTMLPath)
	if err != nil {
		failf("Process config: failed to expand path (%s): %s", cfg.HTMLPath, err)
	}
	iconPath, err := pathutil.AbsPath(cfg.IconPath)
	if err != nil {
		failf("Process config: failed to expand path (%s): %s", cfg.IconPath, err)
	}

	appName := cfg.AppName
	if appName == "" {
		title, err := htmlTitle(htmlPath)
		if err != nil {
			log.Warnf("Failed to parse HTML title: %s", err)
		}
		appName = title
		if appName == "" {
			appName = cfg.Package
		}
		log.Printf("app name (from HTML title): %s", appName)
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = filepath.Dir(htmlPath)
	}
	outDir, err = pathutil.AbsPath(outDir)
	if err != nil {
		failf("Process config: failed to expand path (%s): %s", cfg.OutDir, err)
	}
	if err := pathutil.EnsureDirExist(outDir); err != nil {
		failf("Run: failed to create output dir: %s", err)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		failf("Run: failed to get working dir: %s", err)
	}
	buildDir := filepath.Join(baseDir, "build")
	if err := pathutil.EnsureDirExist(buildDir); err != nil {
		failf("Run: failed to create build dir: %s", err)
	}

	fmt.Println()
	log.Infof("Locate Android tools")
	tc, err := discoverToolchain(cfg.ApktoolJar)
	if err != nil {
		failf("Run: %s", err)
	}

	tmpDir, err := pathutil.NormalizedOSTempDirPath("html2apk")
	if err != nil {
		failf("Run: failed to create tmp dir: %s", err)
	}

	values := manifestValues{
		Package:     cfg.Package,
		VersionName: cfg.Version,
		Label:       appName,
	}

	unsignedAPK := filepath.Join(tmpDir, "unsigned.apk")
	alignedAPK := filepath.Join(tmpDir, "aligned.apk")

	fmt.Println()
	if tc.apktoolJar != "" && cfg.TemplateAPK != "" {
		log.Infof("Build APK from template with apktool")
		templateAPK, err := pathutil.AbsPath(cfg.TemplateAPK)
		if err != nil {
			failf("Run: failed to expand path (%s): %s", cfg.TemplateAPK, err)
		}
		err = buildWithApktool(tc, templateAPK, values, htmlPath, iconPath, tmpDir, unsignedAPK)
		if err != nil {
			failf("Run: failed to build unsigned APK: %s", err)
		}
	} else {
		log.Infof("Build APK with aapt")
		if err := buildWithAapt(tc, values, htmlPath, iconPath, tmpDir, buildDir, unsignedAPK); err != nil {
			failf("Run: failed to build unsigned APK: %s", err)
		}
	}

	fmt.Println()
	log.Infof("Zipalign APK")
	alignedPath, err := zipalignAPK(newZipalignConfiguration(tc.zipalign), unsignedAPK, alignedAPK)
	if err != nil {
		failf("Run: failed to zipalign APK: %s", err)
	}

	fmt.Println()
	log.Infof("Sign APK")
	debugKeystore, err := keystore.NewDebugHelper(tc.keytool, filepath.Join(buildDir, "debug.keystore"))
	if err != nil {
		failf("Run: failed to prepare debug keystore: %s", err)
	}

	apkSigner := NewKeystoreSignatureConfiguration(tc.apksigner,
		debugKeystore.Path(), debugKeystore.Password(), debugKeystore.Alias(), debugKeystore.Password())

	// Signing writes into build/ so side files (.idsig) land there, not in
	// the output dir.
	tempAPK := filepath.Join(buildDir, fmt.Sprintf("build_temp_%s.apk", cfg.Package))
	if err := apkSigner.SignAPK(alignedPath, tempAPK); err != nil {
		failf("Run: failed to sign APK: %s", err)
	}

	fmt.Println()
	log.Infof("Verify APK")
	if err := apkSigner.VerifyAPK(tempAPK); err != nil {
		failf("Run: failed to verify APK: %s", err)
	}

	finalAPK := filepath.Join(outDir, apkFileName(appName, cfg.Package, cfg.Version))
	if err := replaceFile(tempAPK, finalAPK); err != nil {
		failf("Run: failed to move APK to output dir: %s", err)
	}

	if identity, err := parseAPKIdentity(finalAPK); err != nil {
		// A res-less fallback build has no resource table, which the
		// manifest parser needs to resolve references.
		log.Warnf("Could not read back the APK manifest: %s", err)
	} else if err := checkAPKIdentity(identity, values); err != nil {
		failf("Run: output verification failed: %s", err)
	} else {
		log.Printf("Verified package %s (versionName %s)", identity.Package, identity.VersionName)
	}

	fmt.Println()
	log.Donef("Generated APK: %s", finalAPK)
}

func buildWithAapt(tc toolchain, v manifestValues, htmlPath, iconPath, tmpDir, buildDir, outAPK string) error {
	manifestPth := filepath.Join(tmpDir, "AndroidManifest.xml")
	if err := fileutil.WriteStringToFile(manifestPth, patchShellManifest(shellManifest, v)); err != nil {
		return err
	}

	assetsDir := filepath.Join(tmpDir, "assets")
	if err := stageAssets(assetsDir, htmlPath); err != nil {
		return err
	}

	resDir := filepath.Join(tmpDir, "res")
	if err := generateLauncherIcons(resDir, iconPath); err != nil {
		return err
	}
	if err := writeAppTheme(resDir); err != nil {
		return err
	}

	dexer := dexBuilder{javac: tc.javac, d8: tc.d8, androidJar: tc.androidJar}
	classesDex, err := dexer.buildClassesDex(tmpDir, buildDir)
	if err != nil {
		return err
	}

	packager := aaptPackager{aapt: tc.aapt, androidJar: tc.androidJar}
	if err := packager.packageAPK(manifestPth, assetsDir, resDir, outAPK); err != nil {
		return err
	}
	return packager.addClassesDex(outAPK, classesDex)
}

func buildWithApktool(tc toolchain, templateAPK string, v manifestValues, htmlPath, iconPath, tmpDir, outAPK string) error {
	if tc.java == "" {
		return fmt.Errorf("java not found in PATH")
	}

	workDir := filepath.Join(tmpDir, "workdir")
	builder := apktoolBuilder{java: tc.java, apktoolJar: tc.apktoolJar}
	if err := builder.decode(templateAPK, workDir); err != nil {
		return err
	}

	if err := stageAssets(filepath.Join(workDir, "assets"), htmlPath); err != nil {
		return err
	}
	if err := generateLauncherIcons(filepath.Join(workDir, "res"), iconPath); err != nil {
		return err
	}

	manifestPth := filepath.Join(workDir, "AndroidManifest.xml")
	manifestXML, err := fileutil.ReadStringFromFile(manifestPth)
	if err != nil {
		return err
	}
	if err := fileutil.WriteStringToFile(manifestPth, patchDecodedManifest(manifestXML, v)); err != nil {
		return err
	}

	return builder.build(workDir, outAPK)
}

var fileNameSanitizer = strings.NewReplacer("/", "-", "\\", "-", ":", "-")

func apkFileName(appName, pkg, version string) string {
	return fmt.Sprintf("%s_%s_%s.apk", fileNameSanitizer.Replace(strings.TrimSpace(appName)), pkg, version)
}

// replaceFile moves src over dst, falling back to copy+remove when the
// rename crosses filesystems.
func replaceFile(src, dst string) error {
	if exist, err := pathutil.IsPathExists(dst); err != nil {
		return err
	} else if exist {
		if err := os.Remove(dst); err != nil {
			return err
		}
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := command.CopyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
