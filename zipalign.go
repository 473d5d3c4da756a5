package main

// zipalignAPK aligns the APK to 4-byte boundaries as apksigner requires.
// An already aligned APK is used as-is.
func zipalignAPK(zipalignConfig *zipalignConfiguration, apkPath, dstPath string) (string, error) {
	aligned, err := zipalignConfig.checkAlignment(apkPath)
	if err != nil {
		return "", err
	}
	if aligned {
		return apkPath, nil
	}

	if err := zipalignConfig.align(apkPath, dstPath); err != nil {
		return "", err
	}

	return dstPath, nil
}
