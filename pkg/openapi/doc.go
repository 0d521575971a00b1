// Package openapi loads the hero API description with kin-openapi. The
// document names the record-store endpoints used by HTTP clients and carries
// the field rules (component schema HeroFields) enforced by the form
// validator, so client and server read their contract from one place.
package openapi
