package main

import (
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/bitrise-io/go-utils/command"
	"github.com/bitrise-io/go-utils/log"
	"github.com/bitrise-io/go-utils/pathutil"
	"golang.org/x/image/draw"
)

// Launcher icon sizes per density bucket. Both mipmap and drawable
// variants are written so the icon resolves regardless of which reference
// the manifest ends up with.
var iconDensities = []struct {
	dir  string
	size int
}{
	{"mipmap-mdpi", 48},
	{"mipmap-hdpi", 72},
	{"mipmap-xhdpi", 96},
	{"mipmap-xxhdpi", 144},
	{"mipmap-xxxhdpi", 192},
	{"drawable-mdpi", 48},
	{"drawable-hdpi", 72},
	{"drawable-xhdpi", 96},
	{"drawable-xxhdpi", 144},
	{"drawable-xxxhdpi", 192},
}

// generateLauncherIcons scales the source icon into every density
// directory as ic_launcher.png. When the source cannot be decoded or a
// scaled write fails, the original file is copied verbatim instead; a bad
// icon should never fail the build.
func generateLauncherIcons(resDir, iconPath string) error {
	src, err := decodeIcon(iconPath)
	if err != nil {
		log.Warnf("Failed to decode icon, falling back to raw copies: %s", err)
		src = nil
	}

	for _, density := range iconDensities {
		targetDir := filepath.Join(resDir, density.dir)
		if err := pathutil.EnsureDirExist(targetDir); err != nil {
			return err
		}
		target := filepath.Join(targetDir, "ic_launcher.png")

		if src != nil {
			err := writeScaledPNG(target, src, density.size)
			if err == nil {
				continue
			}
			log.Warnf("Failed to write scaled icon for %s: %s", density.dir, err)
		}

		if err := command.CopyFile(iconPath, target); err != nil {
			return err
		}
	}

	return nil
}

func decodeIcon(pth string) (image.Image, error) {
	f, err := os.Open(pth)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func writeScaledPNG(target string, src image.Image, size int) error {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
