package openapi

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Document is a raw hero API description and where it was read from.
type Document struct {
	location string
	raw      []byte
}

// NewDocument copies raw and tags it with location for error messages.
func NewDocument(location string, raw []byte) (Document, error) {
	if location == "" {
		return Document{}, errors.New("openapi: document location is required")
	}
	if len(raw) == 0 {
		return Document{}, fmt.Errorf("openapi: %s is empty", location)
	}
	return Document{location: location, raw: append([]byte(nil), raw...)}, nil
}

// ReadFile loads a description from disk.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return NewDocument(filepath.Clean(path), data)
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location names the file (or embedded asset) the document came from.
func (d Document) Location() string {
	return d.location
}
