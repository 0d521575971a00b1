// Package render turns a hero form session into a View and hands it to a
// named Renderer (HTML page, JSON document). It also maps remote error
// payloads back onto form fields and provides the hidden inputs and
// translation helpers shared by renderers.
package render
