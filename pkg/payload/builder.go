package payload

import (
	"strings"

	"github.com/goliatone/go-heroform/pkg/hero"
)

// Build assembles the multipart payload for state. It performs no validation.
func Build(state *hero.FormState) *Payload {
	p := New()
	if state == nil {
		return p
	}
	for _, img := range state.Images {
		p.AppendFile(hero.FieldImages, img.Filename, img.ContentType, img.Data)
	}
	record := state.Record()
	for _, name := range hero.ScalarFields {
		value, _ := record.Scalar(name)
		p.Append(name, value)
	}
	p.Append(hero.FieldSuperpowers, strings.Join(state.Superpowers, hero.SuperpowerDelimiter))
	return p
}

// Extract decodes a payload built by Build back into a record. Superpowers are
// split on the delimiter; images are recovered from the "images" file parts.
// The record ID is left empty.
func Extract(p *Payload) hero.Record {
	var record hero.Record
	for _, name := range hero.ScalarFields {
		value, _ := p.Get(name)
		record.SetScalar(name, value)
	}
	record.Superpowers = splitSuperpowers(p.GetAll(hero.FieldSuperpowers))
	for _, file := range p.Files(hero.FieldImages) {
		record.Images = append(record.Images, hero.Image{
			Filename:    file.Filename,
			ContentType: file.ContentType,
			Data:        file.Data,
		})
	}
	return record
}

// splitSuperpowers accepts either the joined form produced by Build or one
// value per entry as sent by browser forms.
func splitSuperpowers(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, strings.Split(value, hero.SuperpowerDelimiter)...)
	}
	return out
}
