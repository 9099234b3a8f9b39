package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorageUploadAndURL(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStorage(dir, "http://files.test/resources/")

	err := store.Upload(context.Background(), "42/1-notes.pdf", "application/pdf", strings.NewReader("%PDF-1.4 body"))
	assert.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, "42", "1-notes.pdf"))
	assert.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(written))

	assert.Equal(t, "http://files.test/resources/42/1-notes.pdf", store.PublicURL("42/1-notes.pdf"))
}

func TestLocalStorageOverwrite(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStorage(dir, "http://files.test")

	assert.NoError(t, store.Upload(context.Background(), "42/thumbnails/cover.png", "image/png", strings.NewReader("one")))
	assert.NoError(t, store.Upload(context.Background(), "42/thumbnails/cover.png", "image/png", strings.NewReader("two")))

	written, err := os.ReadFile(filepath.Join(dir, "42", "thumbnails", "cover.png"))
	assert.NoError(t, err)
	assert.Equal(t, "two", string(written))
}
