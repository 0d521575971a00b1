// Package themes loads go-theme manifests for the hero page and resolves a
// theme/variant pair into the renderer configuration the HTML renderer
// consumes.
package themes
