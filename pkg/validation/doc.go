// Package validation holds the client-side checks run before a hero is
// submitted: image selection rules and the field rules declared in the hero
// API description. Both report hero.FieldErrors keyed by wire field name.
package validation
