package hero

// Mode distinguishes creating a new record from editing an existing one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// FormState holds the values of one edit session. It is owned by the caller
// (page handler or terminal prompter) and is not safe for concurrent use.
type FormState struct {
	// RecordID is set when editing; an empty ID means a new record.
	RecordID          string
	Nickname          string
	RealName          string
	OriginDescription string
	CatchPhrase       string
	Superpowers       []string
	Images            []Image
}

// NewFormState seeds a form from an existing record, or an empty form when
// existing is nil. Images always start empty: stored images are kept by the
// record store unless new ones are uploaded.
func NewFormState(existing *Record) *FormState {
	state := &FormState{}
	if existing != nil {
		state.RecordID = existing.ID
		state.Nickname = existing.Nickname
		state.RealName = existing.RealName
		state.OriginDescription = existing.OriginDescription
		state.CatchPhrase = existing.CatchPhrase
		state.Superpowers = append([]string(nil), existing.Superpowers...)
	}
	state.EnsureSuperpower()
	return state
}

// Mode reports whether the form edits an existing record.
func (s *FormState) Mode() Mode {
	if s != nil && s.RecordID != "" {
		return ModeEdit
	}
	return ModeCreate
}

// EnsureSuperpower keeps at least one (possibly empty) superpower entry so the
// rendered form always shows an input.
func (s *FormState) EnsureSuperpower() {
	if len(s.Superpowers) == 0 {
		s.Superpowers = []string{""}
	}
}

// AddSuperpower appends an entry.
func (s *FormState) AddSuperpower(value string) {
	s.Superpowers = append(s.Superpowers, value)
}

// RemoveSuperpower drops the entry at index. Only entries after the first
// are removable.
func (s *FormState) RemoveSuperpower(index int) error {
	if index <= 0 || index >= len(s.Superpowers) {
		return ErrSuperpowerNotRemovable
	}
	s.Superpowers = append(s.Superpowers[:index], s.Superpowers[index+1:]...)
	return nil
}

// SetImages replaces the image selection.
func (s *FormState) SetImages(images []Image) {
	s.Images = append([]Image(nil), images...)
}

// SetScalar assigns a text field by wire name.
func (s *FormState) SetScalar(name, value string) bool {
	switch name {
	case FieldNickname:
		s.Nickname = value
	case FieldRealName:
		s.RealName = value
	case FieldOriginDescription:
		s.OriginDescription = value
	case FieldCatchPhrase:
		s.CatchPhrase = value
	default:
		return false
	}
	return true
}

// Scalar returns a text field by wire name.
func (s *FormState) Scalar(name string) (string, bool) {
	return s.Record().Scalar(name)
}

// Reset returns the form to its initial empty values. The record binding is
// cleared as well, so the next submit creates a new record.
func (s *FormState) Reset() {
	*s = FormState{}
	s.EnsureSuperpower()
}

// Record converts the form values into a record.
func (s *FormState) Record() Record {
	return Record{
		ID:                s.RecordID,
		Nickname:          s.Nickname,
		RealName:          s.RealName,
		OriginDescription: s.OriginDescription,
		CatchPhrase:       s.CatchPhrase,
		Superpowers:       append([]string(nil), s.Superpowers...),
		Images:            append([]Image(nil), s.Images...),
	}
}

// Values exposes the text fields and superpowers as JSON-compatible values,
// the shape schema validators and renderers consume.
func (s *FormState) Values() map[string]any {
	powers := make([]any, 0, len(s.Superpowers))
	for _, power := range s.Superpowers {
		powers = append(powers, power)
	}
	return map[string]any{
		FieldNickname:          s.Nickname,
		FieldRealName:          s.RealName,
		FieldOriginDescription: s.OriginDescription,
		FieldCatchPhrase:       s.CatchPhrase,
		FieldSuperpowers:       powers,
	}
}
