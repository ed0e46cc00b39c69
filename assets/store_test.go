package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadAndExists(t *testing.T) {
	store := NewStore(t.TempDir(), "/static/uploads", NewCache())

	url, err := store.Upload(pngBytes(t), "logo_test_sangha.png", FolderPandels)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if url != "/static/uploads/pandels/logo_test_sangha.png" {
		t.Fatalf("unexpected url: %s", url)
	}
	if _, err := os.Stat(filepath.Join(store.BaseDir, FolderPandels, "logo_test_sangha.png")); err != nil {
		t.Fatalf("file not on disk: %v", err)
	}

	got, ok := store.Exists("logo_test_sangha.png", FolderPandels)
	if !ok || got != url {
		t.Fatalf("Exists = (%q, %v), want (%q, true)", got, ok, url)
	}

	// A cold cache must still find the file on disk.
	store.Cache().Reset()
	got, ok = store.Exists("logo_test_sangha.png", FolderPandels)
	if !ok || got != url {
		t.Fatalf("Exists after cache reset = (%q, %v), want (%q, true)", got, ok, url)
	}
}

func TestUploadReusesExistingName(t *testing.T) {
	store := NewStore(t.TempDir(), "/static/uploads", NewCache())

	first, err := store.Upload(pngBytes(t), "dup.png", FolderPandels)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	path := filepath.Join(store.BaseDir, FolderPandels, "dup.png")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}

	second, err := store.Upload(pngBytes(t), "dup.png", FolderPandels)
	if err != nil {
		t.Fatalf("second upload failed: %v", err)
	}
	if second != first {
		t.Fatalf("dedup broken: %s vs %s", first, second)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("existing file was rewritten")
	}
}

func TestUploadKeepsWebpRaw(t *testing.T) {
	store := NewStore(t.TempDir(), "/static/uploads", NewCache())

	// Minimal RIFF/WEBP header so content sniffing reports image/webp.
	data := append([]byte("RIFF\x1c\x00\x00\x00WEBPVP8 "), make([]byte, 20)...)
	url, err := store.Upload(data, "raw.webp", FolderPandels)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if url != "/static/uploads/pandels/raw.webp" {
		t.Fatalf("unexpected url: %s", url)
	}
	stored, err := os.ReadFile(filepath.Join(store.BaseDir, FolderPandels, "raw.webp"))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(stored, data) {
		t.Fatal("webp bytes were re-encoded instead of stored as-is")
	}
}

func TestUploadRejectsBadInput(t *testing.T) {
	store := NewStore(t.TempDir(), "/static/uploads", NewCache())

	if _, err := store.Upload(pngBytes(t), "notes.txt", FolderPandels); !errors.Is(err, ErrInvalidExtension) {
		t.Fatalf("expected ErrInvalidExtension, got %v", err)
	}
	if _, err := store.Upload([]byte("plain text pretending"), "fake.png", FolderPandels); !errors.Is(err, ErrInvalidMIME) {
		t.Fatalf("expected ErrInvalidMIME, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := NewStore(t.TempDir(), "/static/uploads", NewCache())

	url, err := store.Upload(pngBytes(t), "gone.png", FolderPandels)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if err := store.Delete(url); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := store.Exists("gone.png", FolderPandels); ok {
		t.Fatal("file still reported after delete")
	}

	// deleting twice is not an error
	if err := store.Delete(url); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}

	if err := store.Delete("https://elsewhere.example/x.png"); !errors.Is(err, ErrOutsideStore) {
		t.Fatalf("expected ErrOutsideStore, got %v", err)
	}
}

func TestDeterministicNames(t *testing.T) {
	if got := LogoFileName("Test Sangha"); got != "logo_test_sangha.png" {
		t.Errorf("LogoFileName = %q", got)
	}
	if got := ThemeMainFileName("Agomoni", 2024); got != "agomoni-2024-main.jpg" {
		t.Errorf("ThemeMainFileName = %q", got)
	}
	if got := ThemeGalleryFileName("Agomoni", 2024, 3); got != "agomoni-2024-gallery-3.jpg" {
		t.Errorf("ThemeGalleryFileName = %q", got)
	}
	if got := GalleryPhotoFileName("507f1f77bcf86cd799439011", 2024, 2); got != "507f1f77bcf86cd799439011-2024-photo-2.jpg" {
		t.Errorf("GalleryPhotoFileName = %q", got)
	}
	if got := SafeName("My Photo.JPG", ".jpg"); got != "my_photo.jpg" {
		t.Errorf("SafeName = %q", got)
	}
	if got := SafeName("???", ".jpg"); len(got) < 10 || filepath.Ext(got) != ".jpg" {
		t.Errorf("SafeName fallback = %q", got)
	}
}
