package assets

import (
	"fmt"
	"path/filepath"
	"strings"

	"pranerpujo/utils"

	"github.com/google/uuid"
)

// Asset folders, relative to the store root.
const (
	FolderPandels      = "pandels"
	FolderThemeGallery = "pandels/gallery"
)

// LogoFileName derives the deterministic logo name for a pandel, so
// re-uploading the same committee's logo reuses the stored asset.
func LogoFileName(pandelName string) string {
	return fmt.Sprintf("logo_%s.png", utils.Slugify(pandelName))
}

func ThemeMainFileName(title string, year int) string {
	return fmt.Sprintf("%s-%d-main.jpg", utils.Slugify(title), year)
}

func ThemeGalleryFileName(title string, year, index int) string {
	return fmt.Sprintf("%s-%d-gallery-%d.jpg", utils.Slugify(title), year, index)
}

// GalleryPhotoFileName is index-suffixed per upload batch.
func GalleryPhotoFileName(pandelID string, year, index int) string {
	return fmt.Sprintf("%s-%d-photo-%d.jpg", pandelID, year, index)
}

// SafeName sanitizes an arbitrary upload name; empty names fall back to
// a random one.
func SafeName(original, ext string) string {
	name := utils.Slugify(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if name == "" {
		return uuid.New().String() + ext
	}
	return name + ext
}
