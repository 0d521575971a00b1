package payload

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Entry is a single multipart part. File entries carry a filename and data;
// value entries carry Value.
type Entry struct {
	Name        string
	Value       string
	Filename    string
	ContentType string
	Data        []byte
}

// IsFile reports whether the entry is a file part.
func (e Entry) IsFile() bool {
	return e.Filename != ""
}

// Payload is an ordered list of multipart entries. Repeated names are allowed
// and keep their insertion order, mirroring browser FormData.
type Payload struct {
	entries []Entry
}

// New returns an empty payload.
func New() *Payload {
	return &Payload{}
}

// Append adds a value entry.
func (p *Payload) Append(name, value string) {
	p.entries = append(p.entries, Entry{Name: name, Value: value})
}

// AppendFile adds a file entry.
func (p *Payload) AppendFile(name, filename, contentType string, data []byte) {
	p.entries = append(p.entries, Entry{
		Name:        name,
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	})
}

// Entries returns a copy of the entries in insertion order.
func (p *Payload) Entries() []Entry {
	if p == nil {
		return nil
	}
	return append([]Entry(nil), p.entries...)
}

// Len reports the number of entries.
func (p *Payload) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Get returns the first value entry registered under name.
func (p *Payload) Get(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	for _, entry := range p.entries {
		if entry.Name == name && !entry.IsFile() {
			return entry.Value, true
		}
	}
	return "", false
}

// GetAll returns every value entry registered under name.
func (p *Payload) GetAll(name string) []string {
	if p == nil {
		return nil
	}
	var out []string
	for _, entry := range p.entries {
		if entry.Name == name && !entry.IsFile() {
			out = append(out, entry.Value)
		}
	}
	return out
}

// Files returns the file entries registered under name.
func (p *Payload) Files(name string) []Entry {
	if p == nil {
		return nil
	}
	var out []Entry
	for _, entry := range p.entries {
		if entry.Name == name && entry.IsFile() {
			out = append(out, entry)
		}
	}
	return out
}

// WriteMultipart encodes the payload as multipart/form-data into w and
// returns the content type (including the boundary) callers must send alongside it.
func (p *Payload) WriteMultipart(w io.Writer) (string, error) {
	writer := multipart.NewWriter(w)
	for _, entry := range p.Entries() {
		if entry.IsFile() {
			part, err := writer.CreatePart(fileHeader(entry))
			if err != nil {
				return "", fmt.Errorf("payload: create file part %q: %w", entry.Name, err)
			}
			if _, err := part.Write(entry.Data); err != nil {
				return "", fmt.Errorf("payload: write file part %q: %w", entry.Name, err)
			}
			continue
		}
		if err := writer.WriteField(entry.Name, entry.Value); err != nil {
			return "", fmt.Errorf("payload: write field %q: %w", entry.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("payload: close writer: %w", err)
	}
	return writer.FormDataContentType(), nil
}

// Encode buffers the multipart encoding, returning the body and content type.
func (p *Payload) Encode() (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	contentType, err := p.WriteMultipart(&body)
	if err != nil {
		return nil, "", err
	}
	return &body, contentType, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileHeader(entry Entry) textproto.MIMEHeader {
	contentType := strings.TrimSpace(entry.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(entry.Name), quoteEscaper.Replace(entry.Filename)))
	header.Set("Content-Type", contentType)
	return header
}
