package blobstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jknair0/beforeeach"
)

var (
	dir   string
	blobs *BlobStore
)

func setUp() {
	dir, _ = os.MkdirTemp("", "blobstore")
	blobs = New(dir)
}

func tearDown() {
	os.RemoveAll(dir)
}

var it = beforeeach.Create(setUp, tearDown)

func TestSaveAndOpen(t *testing.T) {
	it(func() {
		path, err := blobs.Save("foto.jpg", []byte("image-bytes"))
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if !strings.HasSuffix(path, ".jpg") {
			t.Errorf("path %q lost the extension", path)
		}
		data, err := blobs.Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if string(data) != "image-bytes" {
			t.Errorf("content = %q", data)
		}
	})
}

func TestSameFilenameDifferentContentDoNotCollide(t *testing.T) {
	it(func() {
		// Two citizens both upload "foto.jpg"; neither overwrites the
		// other because the name comes from the content.
		first, _ := blobs.Save("foto.jpg", []byte("first"))
		second, _ := blobs.Save("foto.jpg", []byte("second"))
		if first == second {
			t.Fatalf("identical path %q for different content", first)
		}
		a, _ := blobs.Open(first)
		b, _ := blobs.Open(second)
		if string(a) != "first" || string(b) != "second" {
			t.Errorf("contents = %q, %q", a, b)
		}
	})
}

func TestIdenticalContentDedupes(t *testing.T) {
	it(func() {
		first, _ := blobs.Save("a.png", []byte("same"))
		second, _ := blobs.Save("b.png", []byte("same"))
		if first != second {
			t.Errorf("paths differ for identical content: %q vs %q", first, second)
		}
		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 {
			t.Errorf("stored %d files, want 1", len(entries))
		}
	})
}

func TestDataURI(t *testing.T) {
	it(func() {
		path, _ := blobs.Save("foto.png", []byte("png-bytes"))
		uri := blobs.DataURI(path)
		if !strings.HasPrefix(uri, "data:image/png;base64,") {
			t.Errorf("uri = %q", uri)
		}

		jpg, _ := blobs.Save("foto.jpg", []byte("jpg-bytes"))
		if uri := blobs.DataURI(jpg); !strings.HasPrefix(uri, "data:image/jpeg;base64,") {
			t.Errorf("uri = %q", uri)
		}
	})
}

func TestDataURIMissingBlob(t *testing.T) {
	it(func() {
		if uri := blobs.DataURI(filepath.Join(dir, "missing.png")); uri != "" {
			t.Errorf("uri = %q, want empty for a missing blob", uri)
		}
		if uri := blobs.DataURI(""); uri != "" {
			t.Errorf("uri = %q, want empty for an empty path", uri)
		}
	})
}
