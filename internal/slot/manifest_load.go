package slot

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/webp"
)

// uploadExts are the image formats the wizard accepts for control art.
var uploadExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// ManifestFromDir scans a directory of uploaded art and builds a
// manifest keyed by lowercased filename stem (btn_spin.PNG → btn_spin).
// Subdirectories are ignored. A missing or empty directory is not an
// error: the panel simply renders with default skins.
func ManifestFromDir(dir string) (*AssetManifest, error) {
	m := NewManifest(nil)
	if dir == "" {
		return m, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("read assets dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !uploadExts[ext] {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		m.Replace(stem, filepath.Join(dir, name))
	}
	return m, nil
}

// DecodeImage loads one uploaded art file. webp needs its own decoder;
// png and jpeg register with image.Decode via the blank imports above.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".webp") {
		img, err := webp.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode webp %s: %w", path, err)
		}
		return img, nil
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
