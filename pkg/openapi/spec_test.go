package openapi

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_ResolvesHeroEndpoints(t *testing.T) {
	spec, err := Default()
	if err != nil {
		t.Fatalf("load embedded spec: %v", err)
	}

	endpoints, err := spec.Endpoints()
	if err != nil {
		t.Fatalf("endpoints: %v", err)
	}
	want := Endpoints{
		Create: Endpoint{OperationID: "createHero", Method: "POST", Path: "/heroes"},
		Update: Endpoint{OperationID: "updateHero", Method: "PUT", Path: "/heroes/{id}"},
		Get:    Endpoint{OperationID: "getHero", Method: "GET", Path: "/heroes/{id}"},
	}
	if diff := cmp.Diff(want, endpoints); diff != "" {
		t.Fatalf("endpoints mismatch (-want +got):\n%s", diff)
	}
	if got := endpoints.Update.Expand("a/b"); got != "/heroes/a%2Fb" {
		t.Fatalf("expected escaped id, got %q", got)
	}
}

func TestDefault_ExposesFieldsSchema(t *testing.T) {
	spec, err := Default()
	if err != nil {
		t.Fatalf("load embedded spec: %v", err)
	}
	schema, err := spec.FieldsSchema()
	if err != nil {
		t.Fatalf("fields schema: %v", err)
	}
	for _, name := range []string{"nickname", "real_name", "origin_description", "catch_phrase", "superpowers"} {
		if _, ok := schema.Properties[name]; !ok {
			t.Fatalf("expected property %s", name)
		}
	}
}

func TestLoad_MissingOperation(t *testing.T) {
	doc, err := NewDocument("inline.yaml", []byte(`openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /heroes:
    post:
      operationId: createHero
      responses:
        '201': {description: ok}
`))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	spec, err := Load(context.Background(), doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := spec.Endpoints(); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := spec.FieldsSchema(); err == nil {
		t.Fatalf("expected missing schema error")
	}
}
