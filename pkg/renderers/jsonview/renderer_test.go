package jsonview_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/render"
	"github.com/goliatone/go-heroform/pkg/renderers/jsonview"
	"github.com/goliatone/go-heroform/pkg/submission"
	"github.com/goliatone/go-heroform/pkg/testsupport"
	"github.com/goliatone/go-heroform/pkg/themes"
)

func TestRender_EncodesViewFieldsAndErrors(t *testing.T) {
	view := render.NewView(render.ViewInput{
		Action:   "/heroes/new",
		BackLink: "/",
		Errors:   hero.FieldErrors{{Field: hero.FieldImages, Message: "Please select at least one image"}},
		Notice:   &submission.Notice{Kind: submission.NoticeError, Message: "Network error"},
	})

	out, err := jsonview.New(jsonview.WithIndent("")).Render(context.Background(), view, render.RenderOptions{
		Hidden: map[string]string{"from": "/"},
		Theme:  themes.RendererConfig(nil, nil),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded struct {
		Mode    string `json:"mode"`
		Heading string `json:"heading"`
		Fields  []struct {
			Name   string   `json:"name"`
			Errors []string `json:"errors"`
		} `json:"fields"`
		Notice submission.Notice     `json:"notice"`
		Hidden []render.HiddenField `json:"hidden"`
		Theme  *jsonview.ThemeInfo  `json:"theme"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}

	if decoded.Mode != "create" || decoded.Heading != render.HeadingCreate {
		t.Fatalf("unexpected header fields %+v", decoded)
	}
	errs := map[string][]string{}
	for _, field := range decoded.Fields {
		if len(field.Errors) > 0 {
			errs[field.Name] = field.Errors
		}
	}
	if diff := cmp.Diff(map[string][]string{"images": {"Please select at least one image"}}, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if decoded.Notice.Message != "Network error" {
		t.Fatalf("unexpected notice %+v", decoded.Notice)
	}
	if diff := cmp.Diff([]render.HiddenField{{Name: "from", Value: "/"}}, decoded.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
	if decoded.Theme != nil {
		t.Fatalf("expected no theme block for an empty selection, got %+v", decoded.Theme)
	}
}

func TestRender_IndentedDocumentGolden(t *testing.T) {
	record := testsupport.LoadRecord(t, filepath.Join("testdata", "flash.json"))
	view := render.View{
		Mode:        hero.ModeCreate,
		Heading:     render.HeadingCreate,
		Action:      "/heroes/new",
		Method:      "POST",
		BackLink:    "/",
		BackLabel:   render.LabelBack,
		SubmitLabel: render.LabelSubmit,
		AddLabel:    render.LabelAddSuperpower,
		RemoveLabel: render.LabelRemoveSuperpower,
		Fields: []render.FieldView{{
			Name:     hero.FieldNickname,
			Label:    "Nickname",
			LabelKey: "hero.field.nickname",
			Kind:     render.FieldKindText,
			Value:    record.Nickname,
			Errors:   []string{"Nickname is too fast"},
		}},
		Record: &record,
	}

	out, err := jsonview.New().Render(context.Background(), view, render.RenderOptions{
		Hidden: map[string]string{"from": "/"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "success.golden"), out)
}
