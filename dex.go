package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-utils/log"
	"github.com/bitrise-io/go-utils/pathutil"
	"github.com/droidpack/html2apk/keystore"
)

type dexBuilder struct {
	javac      string
	d8         string
	androidJar string
}

// buildClassesDex compiles the embedded shell activity and dexes it with
// d8, writing the result under buildDir/dex. The shell source never
// changes between runs, so an already cached classes.dex is reused and
// both javac and d8 are skipped.
func (b dexBuilder) buildClassesDex(tmpDir, buildDir string) (string, error) {
	dexDir := filepath.Join(buildDir, "dex")
	classesDex := filepath.Join(dexDir, "classes.dex")

	if exist, err := pathutil.IsPathExists(classesDex); err != nil {
		return "", err
	} else if exist {
		log.Printf("Reusing cached classes.dex: %s", classesDex)
		return classesDex, nil
	}

	if b.javac == "" {
		return "", errors.New("javac not found in PATH")
	}

	srcDir := filepath.Join(tmpDir, "java")
	if err := pathutil.EnsureDirExist(srcDir); err != nil {
		return "", err
	}
	srcPth := filepath.Join(srcDir, "MainActivity.java")
	if err := fileutil.WriteStringToFile(srcPth, shellActivitySource); err != nil {
		return "", err
	}

	classesDir := filepath.Join(tmpDir, "classes")
	if err := pathutil.EnsureDirExist(classesDir); err != nil {
		return "", err
	}

	if err := keystore.Execute([]string{
		b.javac,
		"-encoding", "UTF-8",
		"-source", "1.8",
		"-target", "1.8",
		"-bootclasspath", b.androidJar,
		"-classpath", b.androidJar,
		"-d", classesDir,
		srcPth,
	}); err != nil {
		return "", fmt.Errorf("javac failed: %s", err)
	}

	classFiles, err := collectClassFiles(classesDir)
	if err != nil {
		return "", err
	}
	if len(classFiles) == 0 {
		return "", fmt.Errorf("no .class files produced in %s", classesDir)
	}

	if err := pathutil.EnsureDirExist(dexDir); err != nil {
		return "", err
	}
	cmdSlice := append([]string{b.d8, "--min-api", "21", "--output", dexDir}, classFiles...)
	if err := keystore.Execute(cmdSlice); err != nil {
		return "", fmt.Errorf("d8 failed: %s", err)
	}

	if exist, err := pathutil.IsPathExists(classesDex); err != nil {
		return "", err
	} else if !exist {
		return "", fmt.Errorf("d8 did not produce %s", classesDex)
	}
	return classesDex, nil
}

func collectClassFiles(classesDir string) ([]string, error) {
	var classFiles []string
	err := filepath.Walk(classesDir, func(pth string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(pth), ".class") {
			classFiles = append(classFiles, pth)
		}
		return nil
	})
	return classFiles, err
}
