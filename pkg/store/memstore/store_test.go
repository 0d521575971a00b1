package memstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/payload"
	"github.com/goliatone/go-heroform/pkg/store/memstore"
	"github.com/goliatone/go-heroform/pkg/submission"
	"github.com/goliatone/go-heroform/pkg/testsupport"
)

func TestCreate_AssignsIDAndStoresPayload(t *testing.T) {
	store := memstore.New(memstore.WithIDGenerator(func() string { return "id-1" }))

	created, err := store.Create(context.Background(), payload.Build(testsupport.ValidCreateState()))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "id-1" {
		t.Fatalf("expected generated id, got %q", created.ID)
	}

	got, err := store.Get(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Fatalf("stored record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"strength", "lasso of truth"}, got.Superpowers); diff != "" {
		t.Fatalf("superpowers mismatch (-want +got):\n%s", diff)
	}
}

func TestCreate_DefaultIDsAreUnique(t *testing.T) {
	store := memstore.New()
	a, err := store.Create(context.Background(), payload.Build(testsupport.ValidCreateState()))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := store.Create(context.Background(), payload.Build(testsupport.ValidCreateState()))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
}

func TestUpdate_KeepsImagesWhenNoneSent(t *testing.T) {
	record := testsupport.SampleRecord()
	store := memstore.New(memstore.WithRecords(record))

	state := hero.NewFormState(&record)
	state.Nickname = "Kal-El"
	updated, err := store.Update(context.Background(), record.ID, payload.Build(state))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Nickname != "Kal-El" {
		t.Fatalf("expected nickname update, got %q", updated.Nickname)
	}
	if diff := cmp.Diff(record.Images, updated.Images); diff != "" {
		t.Fatalf("images mismatch (-want +got):\n%s", diff)
	}

	state.SetImages([]hero.Image{testsupport.PNG("new.png")})
	updated, err = store.Update(context.Background(), record.ID, payload.Build(state))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Images) != 1 || updated.Images[0].Filename != "new.png" {
		t.Fatalf("expected uploaded image to replace stored ones, got %+v", updated.Images)
	}
}

func TestUpdateAndGet_MissingRecord(t *testing.T) {
	store := memstore.New()
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, submission.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, err := store.Update(context.Background(), "nope", payload.Build(testsupport.ValidCreateState()))
	if !errors.Is(err, submission.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWithFailure_InjectsErrors(t *testing.T) {
	boom := &submission.RemoteError{StatusCode: 503, Message: "Service unavailable"}
	store := memstore.New(memstore.WithFailure(func(op, _ string) error {
		if op == "create" {
			return boom
		}
		return nil
	}))

	_, err := store.Create(context.Background(), payload.Build(testsupport.ValidCreateState()))
	if !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	list, err := store.List(context.Background())
	if err != nil || len(list) != 0 {
		t.Fatalf("expected nothing stored, got %v %v", list, err)
	}
}

func TestGet_ReturnsCopies(t *testing.T) {
	record := testsupport.SampleRecord()
	store := memstore.New(memstore.WithRecords(record))

	got, err := store.Get(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Superpowers[0] = "changed"

	again, _ := store.Get(context.Background(), record.ID)
	if again.Superpowers[0] != "flight" {
		t.Fatalf("store must not hand out aliased slices")
	}
}

func TestList_SortedByNickname(t *testing.T) {
	store := memstore.New(memstore.WithRecords(
		hero.Record{ID: "2", Nickname: "Superman"},
		hero.Record{ID: "1", Nickname: "Batman"},
	))
	list, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var names []string
	for _, record := range list {
		names = append(names, record.Nickname)
	}
	if diff := cmp.Diff([]string{"Batman", "Superman"}, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}
