package validation

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-heroform/pkg/hero"
)

func validState() *hero.FormState {
	state := hero.NewFormState(nil)
	state.Nickname = "Wonder Woman"
	state.RealName = "Diana Prince"
	state.OriginDescription = "Amazon princess of Themyscira"
	state.CatchPhrase = "Great Hera!"
	state.Superpowers = []string{"strength", "lasso of truth"}
	state.SetImages([]hero.Image{{Filename: "diana.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}})
	return state
}

func newValidator(t *testing.T) *FormValidator {
	t.Helper()
	v, err := NewFormValidator(DefaultImageRules())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func TestFormValidator_ValidStatePasses(t *testing.T) {
	if errs := newValidator(t).Validate(context.Background(), validState()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestFormValidator_CreateWithoutImagesFailsOnImages(t *testing.T) {
	state := validState()
	state.SetImages(nil)

	errs := newValidator(t).Validate(context.Background(), state)

	want := hero.FieldErrors{{Field: "images", Message: MessageImagesRequired}}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFormValidator_EditWithoutImagesPasses(t *testing.T) {
	state := validState()
	state.RecordID = "42"
	state.SetImages(nil)

	if errs := newValidator(t).Validate(context.Background(), state); len(errs) != 0 {
		t.Fatalf("expected no errors in edit mode, got %v", errs)
	}
}

func TestFormValidator_ReportsSchemaMessagesPerField(t *testing.T) {
	state := validState()
	state.Nickname = "   "
	state.CatchPhrase = ""
	state.Superpowers = []string{"strength", ""}

	errs := newValidator(t).Validate(context.Background(), state)

	want := map[string][]string{
		"nickname":     {"Nickname is required"},
		"catch_phrase": {"Catch phrase is required"},
		"superpowers":  {"Superpower cannot be empty"},
	}
	if diff := cmp.Diff(want, errs.ByField()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFormValidator_MaxLength(t *testing.T) {
	state := validState()
	state.RealName = strings.Repeat("x", 81)

	errs := newValidator(t).Validate(context.Background(), state)

	if diff := cmp.Diff([]string{"Real name must be at most 80 characters"}, errs.For("real_name")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaValidator_EmptySuperpowerList(t *testing.T) {
	schema, err := DefaultSchemaValidator()
	if err != nil {
		t.Fatalf("schema validator: %v", err)
	}
	values := validState().Values()
	values["superpowers"] = []any{}

	issues := schema.Issues(values)
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %#v", issues)
	}
	if issues[0].Field != "superpowers" || issues[0].Rule != "minItems" {
		t.Fatalf("unexpected issue: %#v", issues[0])
	}
	if issues[0].Message != "At least one superpower is required" {
		t.Fatalf("unexpected message %q", issues[0].Message)
	}
}

func TestSchemaValidator_MissingPropertyMapsToField(t *testing.T) {
	schema, err := DefaultSchemaValidator()
	if err != nil {
		t.Fatalf("schema validator: %v", err)
	}
	values := validState().Values()
	delete(values, "origin_description")

	issues := schema.Issues(values)
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %#v", issues)
	}
	if issues[0].Field != "origin_description" {
		t.Fatalf("expected origin_description, got %#v", issues[0])
	}
	if issues[0].Message != "Description is required" {
		t.Fatalf("unexpected message %q", issues[0].Message)
	}
}

func TestValidateImages_Rules(t *testing.T) {
	rules := ImageRules{MaxCount: 2, MaxBytes: 4, Extensions: []string{"png", ".JPG"}}
	images := []hero.Image{
		{Filename: "ok.png", Data: []byte("1234")},
		{Filename: "big.jpg", Data: []byte("12345")},
		{Filename: "doc.pdf", Data: []byte("1")},
	}

	errs := ValidateImages(images, rules)

	want := hero.FieldErrors{
		{Field: "images", Message: "Please select no more than 2 images"},
		{Field: "images", Message: "big.jpg: file exceeds 4 bytes"},
		{Field: "images", Message: "doc.pdf: only .png, .jpg files are allowed"},
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestImageRules_Accept(t *testing.T) {
	if got := DefaultImageRules().Accept(); got != ".jpg, .jpeg, .png, .webp" {
		t.Fatalf("unexpected accept list %q", got)
	}
}

func TestFieldPathFromPointer(t *testing.T) {
	cases := map[string]string{
		"/superpowers/1":                "superpowers.1",
		"#/properties/nickname":         "nickname",
		"":                              "",
		"/properties/superpowers/items": "superpowers.items",
	}
	for pointer, want := range cases {
		if got := fieldPathFromPointer(pointer); got != want {
			t.Fatalf("fieldPathFromPointer(%q) = %q, want %q", pointer, got, want)
		}
	}
}
