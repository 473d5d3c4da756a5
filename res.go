package main

import (
	"path/filepath"

	"github.com/bitrise-io/go-utils/command"
	"github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-utils/pathutil"
)

// AppTheme removes the action bar and keeps the preview window enabled
// with a white background, so launch shows a blank page instead of a
// black frame while the WebView spins up.
const stylesXML = `<?xml version="1.0" encoding="utf-8"?>
<resources>
    <style name="AppTheme" parent="@android:style/Theme.DeviceDefault.NoActionBar">
        <item name="android:windowBackground">@android:color/white</item>
        <item name="android:windowDisablePreview">false</item>
    </style>
</resources>
`

func writeAppTheme(resDir string) error {
	valuesDir := filepath.Join(resDir, "values")
	if err := pathutil.EnsureDirExist(valuesDir); err != nil {
		return err
	}
	return fileutil.WriteStringToFile(filepath.Join(valuesDir, "styles.xml"), stylesXML)
}

// stageAssets places the page where the shell activity loads it from:
// assets/www/index.html.
func stageAssets(assetsDir, htmlPath string) error {
	wwwDir := filepath.Join(assetsDir, "www")
	if err := pathutil.EnsureDirExist(wwwDir); err != nil {
		return err
	}
	return command.CopyFile(htmlPath, filepath.Join(wwwDir, "index.html"))
}
