// Package assets serves embedded art. Sheets are optional: a missing file
// logs once and the actor renders as a tinted circle instead.
package assets

import (
	"bytes"
	"embed"
	"image"
	_ "image/png"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed *
var assetsFS embed.FS

// LoadImage loads an embedded image by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	b, err := assetsFS.ReadFile(cleanAssetPath(path))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadSheet resolves a spritesheet by name, returning nil when the art is
// not shipped.
func LoadSheet(name string) *ebiten.Image {
	if name == "" {
		return nil
	}
	img, err := LoadImage(name)
	if err != nil {
		log.Printf("assets: no sheet %s, using shape fallback", name)
		return nil
	}
	return img
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	return strings.TrimPrefix(s, "assets/")
}
