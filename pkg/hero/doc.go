// Package hero defines the superhero record, the typed form state edited by
// the create/edit form, and the field-level error list produced by
// validators. Field names match the multipart wire names so payload builders,
// validators, and renderers share a single vocabulary.
package hero
