package render

import (
	"strconv"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/submission"
)

// Labels used by the hero form. Each has a translation key of the form
// "hero.<key>" applied by LocalizeView.
const (
	HeadingCreate         = "Add new SuperHero!"
	LabelSubmit           = "Submit"
	LabelBack             = "Back"
	LabelAddSuperpower    = "Add Superpower"
	LabelRemoveSuperpower = "Remove"

	// ActionAddSuperpower and ActionRemoveSuperpower name the buttons that
	// edit the superpower list without submitting the form.
	ActionAddSuperpower    = "add_superpower"
	ActionRemoveSuperpower = "remove_superpower"
)

// FieldKind selects the control a renderer emits for a field.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindTextarea FieldKind = "textarea"
	FieldKindList     FieldKind = "list"
	FieldKindFiles    FieldKind = "files"
)

// FieldView is one form control ready for rendering.
type FieldView struct {
	Name     string     `json:"name"`
	Label    string     `json:"label"`
	LabelKey string     `json:"-"`
	Kind     FieldKind  `json:"kind"`
	Value    string     `json:"value,omitempty"`
	Items    []ItemView `json:"items,omitempty"`
	Accept   string     `json:"accept,omitempty"`
	Multiple bool       `json:"multiple,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// ItemView is one entry of a list field.
type ItemView struct {
	Index     int    `json:"index"`
	ID        string `json:"id"`
	Value     string `json:"value"`
	Removable bool   `json:"removable"`
}

// View is everything a renderer needs to draw the hero form page.
type View struct {
	Mode        hero.Mode          `json:"mode"`
	RecordID    string             `json:"id,omitempty"`
	Heading     string             `json:"heading,omitempty"`
	Action      string             `json:"action"`
	Method      string             `json:"method"`
	BackLink    string             `json:"backLink"`
	BackLabel   string             `json:"backLabel"`
	SubmitLabel string             `json:"submitLabel"`
	AddLabel    string             `json:"addLabel"`
	RemoveLabel string             `json:"removeLabel"`
	Loading     bool               `json:"loading"`
	Fields      []FieldView        `json:"fields"`
	FormErrors  []string           `json:"formErrors,omitempty"`
	Notice      *submission.Notice `json:"notice,omitempty"`
	Record      *hero.Record       `json:"record,omitempty"`
}

// ViewInput collects the page state a View is built from.
type ViewInput struct {
	State      *hero.FormState
	Errors     hero.FieldErrors
	FormErrors []string
	Notice     *submission.Notice
	Action     string
	BackLink   string
	// Accept lists the allowed image extensions for the file picker.
	Accept  string
	Loading bool
	// Record is the stored hero after a successful submit.
	Record *hero.Record
}

// NewView lays out the hero form. The heading only appears when creating and
// the first superpower entry is never removable.
func NewView(in ViewInput) View {
	state := in.State
	if state == nil {
		state = hero.NewFormState(nil)
	}
	mode := state.Mode()
	errs := in.Errors.ByField()

	view := View{
		Mode:        mode,
		RecordID:    state.RecordID,
		Action:      in.Action,
		Method:      "POST",
		BackLink:    in.BackLink,
		BackLabel:   LabelBack,
		SubmitLabel: LabelSubmit,
		AddLabel:    LabelAddSuperpower,
		RemoveLabel: LabelRemoveSuperpower,
		Loading:     in.Loading,
		FormErrors:  normalizeMessages(in.FormErrors),
		Notice:      in.Notice,
		Record:      in.Record,
	}
	if mode == hero.ModeCreate {
		view.Heading = HeadingCreate
	}

	text := func(name, label string, kind FieldKind) FieldView {
		value, _ := state.Scalar(name)
		return FieldView{
			Name:     name,
			Label:    label,
			LabelKey: "hero.field." + name,
			Kind:     kind,
			Value:    value,
			Errors:   errs[name],
		}
	}

	items := make([]ItemView, 0, len(state.Superpowers))
	for idx, value := range state.Superpowers {
		items = append(items, ItemView{
			Index:     idx,
			ID:        hero.FieldSuperpowers + "-" + strconv.Itoa(idx),
			Value:     value,
			Removable: idx > 0,
		})
	}

	view.Fields = []FieldView{
		text(hero.FieldNickname, "Nickname", FieldKindText),
		text(hero.FieldRealName, "Real Name", FieldKindText),
		text(hero.FieldOriginDescription, "Description", FieldKindTextarea),
		text(hero.FieldCatchPhrase, "Catch phrase", FieldKindText),
		{
			Name:     hero.FieldSuperpowers,
			Label:    "Superpowers",
			LabelKey: "hero.field." + hero.FieldSuperpowers,
			Kind:     FieldKindList,
			Items:    items,
			Errors:   errs[hero.FieldSuperpowers],
		},
		{
			Name:     hero.FieldImages,
			Label:    "Images",
			LabelKey: "hero.field." + hero.FieldImages,
			Kind:     FieldKindFiles,
			Accept:   in.Accept,
			Multiple: true,
			Errors:   errs[hero.FieldImages],
		},
	}

	// Errors for fields the form does not show stay visible at form level.
	known := make(map[string]struct{}, len(view.Fields))
	for _, field := range view.Fields {
		known[field.Name] = struct{}{}
	}
	for _, err := range in.Errors {
		if _, ok := known[err.Field]; !ok {
			view.FormErrors = MergeFormErrors(view.FormErrors, err.Message)
		}
	}
	return view
}

// Field returns the named field view.
func (v View) Field(name string) (FieldView, bool) {
	for _, field := range v.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldView{}, false
}
