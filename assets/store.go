package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrOutsideStore     = errors.New("url does not belong to this store")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Store keeps uploaded assets on local disk under BaseDir and hands out
// public URLs under BaseURL. Existence checks go through the injected
// Cache first, then the filesystem.
type Store struct {
	BaseDir string
	BaseURL string
	cache   *Cache
}

func NewStore(baseDir, baseURL string, cache *Cache) *Store {
	if cache == nil {
		cache = NewCache()
	}
	return &Store{
		BaseDir: baseDir,
		BaseURL: strings.TrimRight(baseURL, "/"),
		cache:   cache,
	}
}

func (s *Store) Cache() *Cache { return s.cache }

func (s *Store) url(folder, name string) string {
	return s.BaseURL + "/" + path.Join(folder, name)
}

// Exists reports whether an asset with this name is already stored and
// returns its URL when it is.
func (s *Store) Exists(name, folder string) (string, bool) {
	if url, ok := s.cache.Get(folder, name); ok {
		return url, true
	}
	if _, err := os.Stat(filepath.Join(s.BaseDir, folder, name)); err != nil {
		return "", false
	}
	url := s.url(folder, name)
	s.cache.Put(folder, name, url)
	return url, true
}

// Upload validates and stores one image, returning its public URL. When
// an asset with the same name already exists in the folder, the stored
// URL is reused and the bytes are discarded.
func (s *Store) Upload(data []byte, name, folder string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrInvalidExtension, ext)
	}
	mimeType := http.DetectContentType(data)
	if !allowedMIMEs[mimeType] {
		return "", fmt.Errorf("%w: %s", ErrInvalidMIME, mimeType)
	}

	if url, ok := s.Exists(name, folder); ok {
		return url, nil
	}

	// Re-encode decodable images: strips EXIF and normalizes to the
	// extension's format. Undecodable-but-valid-MIME data is stored raw,
	// as is webp — imaging has no webp encoder, so re-encoding would
	// store the wrong format under a .webp name.
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil && ext != ".webp" {
		var buf bytes.Buffer
		format := imaging.JPEG
		if ext == ".png" {
			format = imaging.PNG
		} else if ext == ".gif" {
			format = imaging.GIF
		}
		if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(90)); err == nil {
			data = buf.Bytes()
		}
		_ = s.writeThumbnail(img, name, folder)
	}

	dir := filepath.Join(s.BaseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	fullPath := filepath.Join(dir, name)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", fullPath, err)
	}

	url := s.url(folder, name)
	s.cache.Put(folder, name, url)
	return url, nil
}

func (s *Store) writeThumbnail(img image.Image, name, folder string) error {
	thumb := imaging.Resize(img, 200, 0, imaging.Lanczos)
	dir := filepath.Join(s.BaseDir, folder, "thumb")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return imaging.Save(thumb, filepath.Join(dir, name))
}

// Delete removes the asset a URL points at. Unknown files are not an
// error; callers treat cleanup as best-effort anyway.
func (s *Store) Delete(url string) error {
	rel, ok := strings.CutPrefix(url, s.BaseURL+"/")
	if !ok {
		return ErrOutsideStore
	}
	folder, name := path.Split(rel)
	folder = strings.Trim(folder, "/")
	s.cache.Forget(folder, name)

	fullPath := filepath.Join(s.BaseDir, filepath.FromSlash(rel))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	thumbPath := filepath.Join(s.BaseDir, filepath.FromSlash(folder), "thumb", name)
	if err := os.Remove(thumbPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
