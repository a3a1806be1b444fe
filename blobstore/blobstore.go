// Package blobstore keeps report photos on disk under content-addressed
// names, so two uploads that happen to share a filename can never clobber
// each other.
package blobstore

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
)

type BlobStore struct {
	dir string
}

func New(dir string) *BlobStore {
	return &BlobStore{dir: dir}
}

// Save writes the blob under a name derived from its content hash, keeping
// the original extension. Saving identical content twice yields the same
// path and writes once.
func (b *BlobStore) Save(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("blobstore: mkdir %s: %w", b.dir, err)
	}
	sum := sha256.Sum256(data)
	name := hex.EncodeToString(sum[:])[:16] + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(b.dir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("blobstore: write %s: %w", path, err)
	}
	log.Infof("Stored blob %s (%d bytes)", name, len(data))
	return path, nil
}

// Open reads a stored blob back.
func (b *BlobStore) Open(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DataURI renders the blob as an inline data URI for map popups. A missing
// or unreadable blob yields the empty string.
func (b *BlobStore) DataURI(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	mime := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
