package main

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/avast/apkparser"
)

type apkIdentity struct {
	XMLName     xml.Name `xml:"manifest"`
	Package     string   `xml:"package,attr"`
	VersionName string   `xml:"versionName,attr"`
}

// parseAPKIdentity decodes the binary AndroidManifest.xml of a built APK
// and returns its package and versionName attributes.
func parseAPKIdentity(apkPath string) (apkIdentity, error) {
	var manifestContent bytes.Buffer
	enc := xml.NewEncoder(&manifestContent)
	enc.Indent("", "\t")

	zipErr, resErr, manErr := apkparser.ParseApk(apkPath, enc)
	if zipErr != nil {
		return apkIdentity{}, fmt.Errorf("failed to unzip the APK: %s", zipErr)
	}
	if resErr != nil {
		return apkIdentity{}, fmt.Errorf("failed to parse resources: %s", resErr)
	}
	if manErr != nil {
		return apkIdentity{}, fmt.Errorf("failed to parse AndroidManifest.xml: %s", manErr)
	}

	return apkIdentityFromManifest(manifestContent.Bytes())
}

func apkIdentityFromManifest(manifestXML []byte) (apkIdentity, error) {
	var identity apkIdentity
	if err := xml.Unmarshal(manifestXML, &identity); err != nil {
		return apkIdentity{}, fmt.Errorf("failed to unmarshal AndroidManifest.xml: %s", err)
	}
	return identity, nil
}

// checkAPKIdentity compares the read-back manifest against the values the
// build was configured with.
func checkAPKIdentity(identity apkIdentity, v manifestValues) error {
	if identity.Package != v.Package {
		return fmt.Errorf("package mismatch: got %s, want %s", identity.Package, v.Package)
	}
	if identity.VersionName != "" && identity.VersionName != v.VersionName {
		return fmt.Errorf("versionName mismatch: got %s, want %s", identity.VersionName, v.VersionName)
	}
	return nil
}
