// Package payload turns a hero form state into a multipart payload and back.
//
// Build is a pure transformation: one file part per selected image under the
// shared "images" field followed by one value part per text field, with
// superpowers joined by hero.SuperpowerDelimiter. Extract reverses the
// process; superpower entries that embed the delimiter come back split.
package payload
