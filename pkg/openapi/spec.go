package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Operation identifiers the record store relies on.
const (
	OperationCreateHero = "createHero"
	OperationUpdateHero = "updateHero"
	OperationGetHero    = "getHero"
)

// FieldsSchemaName names the component schema holding the form field rules.
const FieldsSchemaName = "HeroFields"

// ErrOperationNotFound is returned when the document lacks an operation id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Endpoint is the method and path template of one operation.
type Endpoint struct {
	OperationID string
	Method      string
	Path        string
}

// Expand substitutes the {id} path parameter.
func (e Endpoint) Expand(id string) string {
	return strings.ReplaceAll(e.Path, "{id}", url.PathEscape(id))
}

// Endpoints groups the operations a hero record store calls.
type Endpoints struct {
	Create Endpoint
	Update Endpoint
	Get    Endpoint
}

// Spec is a loaded and validated hero API description.
type Spec struct {
	doc        Document
	t          *openapi3.T
	operations map[string]Endpoint
}

// Load parses and validates doc.
func Load(ctx context.Context, doc Document) (*Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	t, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", doc.Location(), err)
	}
	if err := t.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate %s: %w", doc.Location(), err)
	}

	spec := &Spec{
		doc:        doc,
		t:          t,
		operations: make(map[string]Endpoint),
	}
	if t.Paths != nil {
		for path, item := range t.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if op == nil || op.OperationID == "" {
					continue
				}
				spec.operations[op.OperationID] = Endpoint{
					OperationID: op.OperationID,
					Method:      strings.ToUpper(method),
					Path:        path,
				}
			}
		}
	}
	return spec, nil
}

// Document returns the source document.
func (s *Spec) Document() Document {
	return s.doc
}

// Endpoint resolves an operation id.
func (s *Spec) Endpoint(operationID string) (Endpoint, error) {
	endpoint, ok := s.operations[operationID]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %s", ErrOperationNotFound, operationID)
	}
	return endpoint, nil
}

// Endpoints resolves the create, update and get operations.
func (s *Spec) Endpoints() (Endpoints, error) {
	var (
		out Endpoints
		err error
	)
	if out.Create, err = s.Endpoint(OperationCreateHero); err != nil {
		return Endpoints{}, err
	}
	if out.Update, err = s.Endpoint(OperationUpdateHero); err != nil {
		return Endpoints{}, err
	}
	if out.Get, err = s.Endpoint(OperationGetHero); err != nil {
		return Endpoints{}, err
	}
	return out, nil
}

// FieldsSchema returns the component schema describing form field rules.
func (s *Spec) FieldsSchema() (*openapi3.Schema, error) {
	if s.t.Components == nil {
		return nil, errors.New("openapi: document has no components")
	}
	ref, ok := s.t.Components.Schemas[FieldsSchemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: schema %s not found", FieldsSchemaName)
	}
	return ref.Value, nil
}
