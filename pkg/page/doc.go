// Package page serves the hero create and edit pages. It decodes browser
// form posts into a hero.FormState, runs a submission controller per request
// and renders the result through the renderer registry.
package page
