package main

import (
	"flag"
	"fmt"
	"regexp"

	"github.com/bitrise-io/go-steputils/stepconf"
	"github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-utils/log"
	"github.com/bitrise-io/go-utils/pathutil"
	"gopkg.in/yaml.v3"
)

const argsFileName = "args.yaml"

type configs struct {
	HTMLPath    string `env:"HTML2APK_HTML" yaml:"html"`
	IconPath    string `env:"HTML2APK_ICON" yaml:"icon"`
	Package     string `env:"HTML2APK_PKG" yaml:"pkg"`
	Version     string `env:"HTML2APK_VERSION" yaml:"version"`
	AppName     string `env:"HTML2APK_NAME" yaml:"name"`
	OutDir      string `env:"HTML2APK_OUT_DIR" yaml:"out_dir"`
	TemplateAPK string `env:"HTML2APK_TEMPLATE" yaml:"template"`
	ApktoolJar  string `env:"HTML2APK_APKTOOL" yaml:"apktool"`
	Verbose     bool   `env:"HTML2APK_VERBOSE" yaml:"verbose"`
}

func defaultConfigs() configs {
	return configs{
		HTMLPath:   "index.html",
		IconPath:   "icon.png",
		Package:    "com.droidpack.app",
		Version:    "v1.0",
		ApktoolJar: "apktool.jar",
	}
}

// resolveConfig layers the configuration sources, lowest precedence first:
// built-in defaults, args.yaml in the working directory, HTML2APK_*
// environment variables, command line flags.
func resolveConfig(args []string) (configs, error) {
	cfg := defaultConfigs()

	if exist, err := pathutil.IsPathExists(argsFileName); err != nil {
		return configs{}, err
	} else if exist {
		if err := loadArgsFile(argsFileName, &cfg); err != nil {
			log.Warnf("Failed to load %s: %s", argsFileName, err)
		} else {
			log.Debugf("Loaded configuration from %s", argsFileName)
		}
	}

	if err := stepconf.Parse(&cfg); err != nil {
		return configs{}, fmt.Errorf("failed to parse environment inputs: %s", err)
	}

	if err := parseFlags(&cfg, args); err != nil {
		return configs{}, err
	}

	return cfg, nil
}

func loadArgsFile(pth string, cfg *configs) error {
	content, err := fileutil.ReadBytesFromFile(pth)
	if err != nil {
		return err
	}
	// Unmarshal overlays only the keys present in the file.
	return yaml.Unmarshal(content, cfg)
}

func parseFlags(cfg *configs, args []string) error {
	fs := flag.NewFlagSet("html2apk", flag.ContinueOnError)
	fs.StringVar(&cfg.HTMLPath, "html", cfg.HTMLPath, "path of the HTML page to package")
	fs.StringVar(&cfg.IconPath, "icon", cfg.IconPath, "path of the launcher icon (PNG or JPEG)")
	fs.StringVar(&cfg.Package, "pkg", cfg.Package, "application package name")
	fs.StringVar(&cfg.Version, "version", cfg.Version, "version name")
	fs.StringVar(&cfg.AppName, "name", cfg.AppName, "application label (defaults to the HTML <title>)")
	fs.StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "output directory (defaults to the HTML file's directory)")
	fs.StringVar(&cfg.TemplateAPK, "template", cfg.TemplateAPK, "template APK for the apktool build path")
	fs.StringVar(&cfg.ApktoolJar, "apktool", cfg.ApktoolJar, "path of apktool.jar, enables the apktool build path")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")
	return fs.Parse(args)
}

var packageNameExp = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)+$`)

func (cfg configs) validate() error {
	if exist, err := pathutil.IsPathExists(cfg.HTMLPath); err != nil {
		return fmt.Errorf("failed to check if HTML exists at: %s, error: %s", cfg.HTMLPath, err)
	} else if !exist {
		return fmt.Errorf("HTML not exist at: %s", cfg.HTMLPath)
	}

	if exist, err := pathutil.IsPathExists(cfg.IconPath); err != nil {
		return fmt.Errorf("failed to check if icon exists at: %s, error: %s", cfg.IconPath, err)
	} else if !exist {
		return fmt.Errorf("icon not exist at: %s", cfg.IconPath)
	}

	if !packageNameExp.MatchString(cfg.Package) {
		return fmt.Errorf("invalid package name: %s", cfg.Package)
	}

	return nil
}
