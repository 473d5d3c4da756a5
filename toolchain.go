package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/bitrise-io/go-android/sdk"
	"github.com/bitrise-io/go-utils/log"
	"github.com/bitrise-io/go-utils/pathutil"
)

// toolchain holds the resolved paths of every external binary the pipeline
// shells out to. javac, java and keytool are looked up lazily from PATH and
// may be empty; their absence only fails the steps that need them.
type toolchain struct {
	aapt      string
	zipalign  string
	apksigner string
	d8        string

	javac   string
	java    string
	keytool string

	androidJar string
	apktoolJar string
}

func discoverToolchain(apktoolJar string) (toolchain, error) {
	androidHome := os.Getenv("ANDROID_HOME")
	if androidHome == "" {
		return toolchain{}, errors.New("ANDROID_HOME is not set")
	}
	log.Printf("android_home: %s", androidHome)

	androidSDK, err := sdk.New(androidHome)
	if err != nil {
		return toolchain{}, fmt.Errorf("failed to create SDK model: %s", err)
	}

	var tc toolchain
	for _, tool := range []struct {
		name string
		dst  *string
	}{
		{"aapt", &tc.aapt},
		{"zipalign", &tc.zipalign},
		{"apksigner", &tc.apksigner},
		{"d8", &tc.d8},
	} {
		pth, err := androidSDK.LatestBuildToolPath(tool.name)
		if err != nil {
			return toolchain{}, fmt.Errorf("failed to find %s path: %s", tool.name, err)
		}
		log.Printf("%s: %s", tool.name, pth)
		*tool.dst = pth
	}

	tc.androidJar, err = latestPlatformJar(androidHome)
	if err != nil {
		return toolchain{}, err
	}
	log.Printf("android.jar: %s", tc.androidJar)

	tc.javac, _ = exec.LookPath("javac")
	tc.java, _ = exec.LookPath("java")
	tc.keytool, _ = exec.LookPath("keytool")

	if apktoolJar != "" {
		if exist, err := pathutil.IsPathExists(apktoolJar); err != nil {
			return toolchain{}, err
		} else if exist {
			tc.apktoolJar, err = pathutil.AbsPath(apktoolJar)
			if err != nil {
				return toolchain{}, err
			}
			log.Printf("apktool: %s", tc.apktoolJar)
		}
	}

	return tc, nil
}

// latestPlatformJar returns the android.jar of the highest installed
// platform API level.
func latestPlatformJar(androidHome string) (string, error) {
	platforms, err := filepath.Glob(filepath.Join(androidHome, "platforms", "android-*"))
	if err != nil {
		return "", err
	}

	var bestVer int
	var bestPlatform string
	for _, platform := range platforms {
		_, name := filepath.Split(platform)
		// The glob above guarantees the "android-" prefix.
		ver, err := strconv.Atoi(name[len("android-"):])
		if err != nil || ver < bestVer {
			continue
		}
		bestVer = ver
		bestPlatform = platform
	}
	if bestPlatform == "" {
		return "", fmt.Errorf("no platforms found in %s", filepath.Join(androidHome, "platforms"))
	}

	jar := filepath.Join(bestPlatform, "android.jar")
	if exist, err := pathutil.IsPathExists(jar); err != nil {
		return "", err
	} else if !exist {
		return "", fmt.Errorf("android.jar not exist at: %s", jar)
	}
	return jar, nil
}
