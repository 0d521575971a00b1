// Package testsupport holds fixtures and helpers shared by package tests.
package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/submission"
)

// PNG returns a small image handle with a valid extension.
func PNG(name string) hero.Image {
	return hero.Image{
		Filename:    name,
		ContentType: "image/png",
		Data:        []byte("\x89PNG\r\n\x1a\n" + name),
	}
}

// SampleRecord is a stored hero used by edit-mode tests.
func SampleRecord() hero.Record {
	return hero.Record{
		ID:                "42",
		Nickname:          "Superman",
		RealName:          "Clark Kent",
		OriginDescription: "Sent to Earth from the dying planet Krypton.",
		CatchPhrase:       "Look, up in the sky!",
		Superpowers:       []string{"flight", "heat vision", "super strength"},
		Images:            []hero.Image{PNG("superman.png")},
	}
}

// ValidCreateState is a new-hero form that passes the default validator.
func ValidCreateState() *hero.FormState {
	state := hero.NewFormState(nil)
	state.Nickname = "Wonder Woman"
	state.RealName = "Diana Prince"
	state.OriginDescription = "Amazon princess of Themyscira."
	state.CatchPhrase = "Great Hera!"
	state.Superpowers = []string{"strength", "lasso of truth"}
	state.SetImages([]hero.Image{PNG("diana.png")})
	return state
}

// LoadRecord reads a JSON hero fixture.
func LoadRecord(t *testing.T, path string) hero.Record {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	var record hero.Record
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("decode fixture %s: %v", path, err)
	}
	return record
}

// Notices records notifications for assertions.
type Notices struct {
	mu  sync.Mutex
	got []submission.Notice
}

// Notify implements submission.Notifier.
func (n *Notices) Notify(_ context.Context, kind submission.NoticeKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, submission.Notice{Kind: kind, Message: message})
}

// All returns the recorded notifications in order.
func (n *Notices) All() []submission.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]submission.Notice(nil), n.got...)
}
