package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func uploadRequest(t *testing.T, filename, contents string) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(contents)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	file, header, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	return file, header
}

func TestDiskStore_SaveAndRemove(t *testing.T) {
	store, err := NewDiskStore(filepath.Join(t.TempDir(), "uploads"), "http://localhost:5000/")
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	file, header := uploadRequest(t, "scan.png", "fake image bytes")
	defer file.Close()

	stored, err := store.Save(file, header)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(stored.Path)
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored contents = %q", data)
	}

	if !strings.HasPrefix(stored.URL, "http://localhost:5000/uploads/") {
		t.Errorf("URL = %q, want it under /uploads of the base", stored.URL)
	}
	if !strings.HasSuffix(stored.URL, ".png") {
		t.Errorf("URL = %q, want the original extension kept", stored.URL)
	}
	if strings.Contains(stored.URL, "scan") {
		t.Errorf("URL = %q, want the original name replaced", stored.URL)
	}

	if err := store.Remove(stored); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(stored.Path); !os.IsNotExist(err) {
		t.Error("expected the file to be gone after Remove")
	}
}

func TestDiskStore_RandomNamesDoNotCollide(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:5000")
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	file1, header1 := uploadRequest(t, "report.pdf", "first")
	defer file1.Close()
	file2, header2 := uploadRequest(t, "report.pdf", "second")
	defer file2.Close()

	a, err := store.Save(file1, header1)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := store.Save(file2, header2)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if a.Path == b.Path {
		t.Error("two uploads with the same filename mapped to the same path")
	}
}

func TestDiskStore_RemoveNil(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	if err := store.Remove(nil); err != nil {
		t.Errorf("Remove(nil) = %v, want nil", err)
	}
}
