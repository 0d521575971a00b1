package payload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
)

// DefaultMaxBytes caps the decoded size of a multipart body.
const DefaultMaxBytes int64 = 64 << 20

// ErrTooLarge is returned when a multipart body exceeds the decode limit.
var ErrTooLarge = errors.New("payload: multipart body too large")

// ErrNotMultipart is returned when a request does not carry form-data.
var ErrNotMultipart = errors.New("payload: request is not multipart/form-data")

// Decode reads every part of a multipart stream into a payload, preserving
// part order. maxBytes bounds the total decoded size; zero uses
// DefaultMaxBytes.
func Decode(reader *multipart.Reader, maxBytes int64) (*Payload, error) {
	if reader == nil {
		return nil, errors.New("payload: multipart reader is nil")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	p := New()
	remaining := maxBytes
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return p, nil
		}
		if err != nil {
			return nil, fmt.Errorf("payload: next part: %w", err)
		}

		data, err := io.ReadAll(io.LimitReader(part, remaining+1))
		part.Close()
		if err != nil {
			return nil, fmt.Errorf("payload: read part %q: %w", part.FormName(), err)
		}
		remaining -= int64(len(data))
		if remaining < 0 {
			return nil, ErrTooLarge
		}

		name := part.FormName()
		if name == "" {
			continue
		}
		if filename := part.FileName(); filename != "" {
			p.AppendFile(name, filename, part.Header.Get("Content-Type"), data)
			continue
		}
		p.Append(name, string(data))
	}
}

// FromRequest decodes the multipart body of an HTTP request.
func FromRequest(r *http.Request, maxBytes int64) (*Payload, error) {
	if r == nil || r.Body == nil {
		return nil, errors.New("payload: request body is nil")
	}
	return FromBody(r.Body, r.Header.Get("Content-Type"), maxBytes)
}

// FromBody decodes a multipart body given its content type header.
func FromBody(body io.Reader, contentType string, maxBytes int64) (*Payload, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.EqualFold(mediaType, "multipart/form-data") || params["boundary"] == "" {
		return nil, ErrNotMultipart
	}
	return Decode(multipart.NewReader(body, params["boundary"]), maxBytes)
}
