package main

import (
	"fmt"
	"regexp"
	"strings"
)

// The manifest is rewritten with a fixed set of textual substitutions.
// This is deliberate: the templates are known, and round-tripping them
// through an XML encoder would reorder and re-escape content the build
// tools are sensitive about.

type manifestValues struct {
	Package     string
	VersionName string
	Label       string
}

var (
	packageAttrExp = regexp.MustCompile(`package="[^"]+"`)
	versionNameExp = regexp.MustCompile(`android:versionName="[^"]+"`)
	themeAttrExp   = regexp.MustCompile(`android:theme="[^"]+"`)
	labelAttrExp   = regexp.MustCompile(`android:label="[^"]+"`)
	activityTagExp = regexp.MustCompile(`(<activity[^>]+)(>)`)
)

// patchShellManifest prepares the embedded shell manifest for packaging
// with aapt.
func patchShellManifest(xml string, v manifestValues) string {
	xml = ensureUsesSDK(xml)
	xml = ensureInternetPermission(xml)
	xml = ensureIconAttr(xml)
	xml = forceAppTheme(xml)
	xml = exportFirstActivity(xml)
	xml = absolutizeActivityName(xml)
	xml = setLabel(xml, v.Label)
	xml = setPackage(xml, v.Package)
	xml = setVersionName(xml, v.VersionName)
	return xml
}

// patchDecodedManifest applies the narrower set an apktool-decoded
// manifest tolerates on rebuild: the template APK already carries a
// theme, an exported activity and an absolute component name.
func patchDecodedManifest(xml string, v manifestValues) string {
	xml = ensureInternetPermission(xml)
	xml = ensureIconAttr(xml)
	xml = setPackage(xml, v.Package)
	xml = setVersionName(xml, v.VersionName)
	return xml
}

func replaceFirst(exp *regexp.Regexp, s, repl string) string {
	loc := exp.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}

func setPackage(xml, pkg string) string {
	return replaceFirst(packageAttrExp, xml, fmt.Sprintf(`package="%s"`, pkg))
}

func setVersionName(xml, versionName string) string {
	repl := fmt.Sprintf(`android:versionName="%s"`, versionName)
	if versionNameExp.MatchString(xml) {
		return replaceFirst(versionNameExp, xml, repl)
	}
	return strings.Replace(xml, "<manifest ", "<manifest "+repl+" ", 1)
}

func setLabel(xml, label string) string {
	return replaceFirst(labelAttrExp, xml, fmt.Sprintf(`android:label="%s"`, xmlEscape(label)))
}

func ensureUsesSDK(xml string) string {
	if strings.Contains(xml, "<uses-sdk") {
		return xml
	}
	return strings.Replace(xml, "<application",
		"<uses-sdk android:minSdkVersion=\"21\" android:targetSdkVersion=\"33\" />\n    <application", 1)
}

func ensureInternetPermission(xml string) string {
	if strings.Contains(xml, "android.permission.INTERNET") {
		return xml
	}
	return strings.Replace(xml, "<application",
		"<uses-permission android:name=\"android.permission.INTERNET\" />\n    <application", 1)
}

func ensureIconAttr(xml string) string {
	if strings.Contains(xml, "android:icon=") {
		return xml
	}
	return strings.Replace(xml, "<application", `<application android:icon="@mipmap/ic_launcher"`, 1)
}

func forceAppTheme(xml string) string {
	if !strings.Contains(xml, "android:theme=") {
		return strings.Replace(xml, "<application", `<application android:theme="@style/AppTheme"`, 1)
	}
	return themeAttrExp.ReplaceAllString(xml, `android:theme="@style/AppTheme"`)
}

// exportFirstActivity marks the launcher activity explicitly exported,
// required since Android 12 for activities with intent filters.
func exportFirstActivity(xml string) string {
	if strings.Contains(xml, `android:exported="true"`) || !strings.Contains(xml, "<intent-filter>") {
		return xml
	}
	m := activityTagExp.FindStringSubmatchIndex(xml)
	if m == nil {
		return xml
	}
	return xml[:m[3]] + ` android:exported="true"` + xml[m[3]:]
}

// absolutizeActivityName pins the shell activity reference to its compiled
// package. A relative ".MainActivity" would resolve against the new
// application package after setPackage and point at a class that does not
// exist.
func absolutizeActivityName(xml string) string {
	return strings.ReplaceAll(xml,
		`android:name=".MainActivity"`,
		fmt.Sprintf(`android:name="%s.MainActivity"`, shellPackage))
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
