package hero

import (
	"path/filepath"
	"strings"
)

// Wire names for the record fields. Payloads, validators, and renderers key
// their data by these names.
const (
	FieldID                = "id"
	FieldNickname          = "nickname"
	FieldRealName          = "real_name"
	FieldOriginDescription = "origin_description"
	FieldCatchPhrase       = "catch_phrase"
	FieldSuperpowers       = "superpowers"
	FieldImages            = "images"
)

// SuperpowerDelimiter joins superpower entries into a single payload value.
// Entries containing the delimiter do not survive a build/extract round trip.
const SuperpowerDelimiter = ","

// ScalarFields lists the text fields in payload order.
var ScalarFields = []string{
	FieldNickname,
	FieldRealName,
	FieldOriginDescription,
	FieldCatchPhrase,
}

// Image is an explicit file handle selected for upload.
type Image struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"-"`
}

// Size reports the payload size in bytes.
func (i Image) Size() int64 {
	return int64(len(i.Data))
}

// Ext returns the lower-cased file extension including the leading dot.
func (i Image) Ext() string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(i.Filename)))
}

// Record is a persisted superhero. ID is empty until the record store assigns
// one.
type Record struct {
	ID                string   `json:"id,omitempty"`
	Nickname          string   `json:"nickname"`
	RealName          string   `json:"real_name"`
	OriginDescription string   `json:"origin_description"`
	CatchPhrase       string   `json:"catch_phrase"`
	Superpowers       []string `json:"superpowers"`
	Images            []Image  `json:"images,omitempty"`
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	out.Superpowers = append([]string(nil), r.Superpowers...)
	if len(r.Images) > 0 {
		out.Images = make([]Image, len(r.Images))
		for idx, img := range r.Images {
			img.Data = append([]byte(nil), img.Data...)
			out.Images[idx] = img
		}
	}
	return out
}

// Scalar returns the value of a text field by wire name.
func (r Record) Scalar(name string) (string, bool) {
	switch name {
	case FieldNickname:
		return r.Nickname, true
	case FieldRealName:
		return r.RealName, true
	case FieldOriginDescription:
		return r.OriginDescription, true
	case FieldCatchPhrase:
		return r.CatchPhrase, true
	default:
		return "", false
	}
}

// SetScalar assigns a text field by wire name. Unknown names are ignored and
// reported as false.
func (r *Record) SetScalar(name, value string) bool {
	switch name {
	case FieldNickname:
		r.Nickname = value
	case FieldRealName:
		r.RealName = value
	case FieldOriginDescription:
		r.OriginDescription = value
	case FieldCatchPhrase:
		r.CatchPhrase = value
	default:
		return false
	}
	return true
}
