package page

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/payload"
	"github.com/goliatone/go-heroform/pkg/render"
)

// backField carries the back link target across posts.
const backField = "from"

// listAction is a superpower list edit requested by the add or remove
// buttons.
type listAction struct {
	add    bool
	remove int
}

// decodeForm applies a browser form post to state. Every text input of the
// superpower list arrives as its own value; empty file inputs are skipped.
func decodeForm(p *payload.Payload, state *hero.FormState) (*listAction, string) {
	for _, name := range hero.ScalarFields {
		if value, ok := p.Get(name); ok {
			state.SetScalar(name, value)
		}
	}

	state.Superpowers = append([]string(nil), p.GetAll(hero.FieldSuperpowers)...)
	state.EnsureSuperpower()

	var images []hero.Image
	for _, file := range p.Files(hero.FieldImages) {
		if len(file.Data) == 0 && strings.TrimSpace(file.Filename) == "" {
			continue
		}
		images = append(images, hero.Image{
			Filename:    file.Filename,
			ContentType: file.ContentType,
			Data:        file.Data,
		})
	}
	state.SetImages(images)

	back, _ := p.Get(backField)

	if _, ok := p.Get(render.ActionAddSuperpower); ok {
		return &listAction{add: true, remove: -1}, back
	}
	if raw, ok := p.Get(render.ActionRemoveSuperpower); ok {
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			idx = -1
		}
		return &listAction{remove: idx}, back
	}
	return nil, back
}

// apply runs the list edit. It reports a form message when the entry cannot
// be removed.
func (a *listAction) apply(state *hero.FormState) string {
	if a.add {
		state.AddSuperpower("")
		return ""
	}
	if err := state.RemoveSuperpower(a.remove); err != nil {
		return "This superpower cannot be removed"
	}
	return ""
}

// safeBackLink keeps the back link on this site. Absolute URLs,
// protocol-relative paths and anything unparsable fall back to "/".
func safeBackLink(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return u.String()
}
