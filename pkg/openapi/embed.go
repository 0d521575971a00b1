package openapi

import (
	"context"
	_ "embed"
	"sync"
)

//go:embed hero.yaml
var embeddedSpec []byte

var (
	defaultOnce sync.Once
	defaultSpec *Spec
	defaultErr  error
)

// EmbeddedDocument returns the bundled hero API description.
func EmbeddedDocument() Document {
	doc, err := NewDocument("embedded:hero.yaml", embeddedSpec)
	if err != nil {
		// The embed directive guarantees a payload.
		panic(err)
	}
	return doc
}

// Default loads the embedded description once and caches the result.
func Default() (*Spec, error) {
	defaultOnce.Do(func() {
		defaultSpec, defaultErr = Load(context.Background(), EmbeddedDocument())
	})
	return defaultSpec, defaultErr
}
