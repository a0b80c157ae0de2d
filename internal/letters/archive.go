package letters

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
)

var textPartRe = regexp.MustCompile(`^word/(document|header\d*|footer\d*)\.xml$`)

// Archive is an in-memory copy of a template's zip parts. Part order is
// preserved so serialized output stays byte-stable for untouched parts.
type Archive struct {
	order []string
	parts map[string][]byte
}

// OpenArchive decodes template bytes into an archive. Corrupt input
// yields a ParseError-like failure wrapped as TemplateRenderError only
// at render time; here it is a plain decode error for the caller.
func OpenArchive(b []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, &TemplateRenderError{Category: "archive", Message: err.Error()}
	}

	a := &Archive{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, &TemplateRenderError{Category: "archive", Tag: f.Name, Message: err.Error()}
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &TemplateRenderError{Category: "archive", Tag: f.Name, Message: err.Error()}
		}
		a.order = append(a.order, f.Name)
		a.parts[f.Name] = data
	}
	return a, nil
}

// Part returns the raw text of one part, or "" and false when absent.
func (a *Archive) Part(name string) (string, bool) {
	b, ok := a.parts[name]
	return string(b), ok
}

// SetPart replaces a part's content. Unknown names are appended.
func (a *Archive) SetPart(name, content string) {
	if _, ok := a.parts[name]; !ok {
		a.order = append(a.order, name)
	}
	a.parts[name] = []byte(content)
}

// TextParts lists the parts that carry visible document text: the body
// plus every header and footer.
func (a *Archive) TextParts() []string {
	var names []string
	for _, name := range a.order {
		if textPartRe.MatchString(name) {
			names = append(names, name)
		}
	}
	return names
}

// Serialize writes the archive back to zip bytes.
func (a *Archive) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range a.order {
		w, err := zw.Create(name)
		if err != nil {
			return nil, &TemplateRenderError{Category: "archive", Tag: name, Message: err.Error()}
		}
		if _, err := w.Write(a.parts[name]); err != nil {
			return nil, &TemplateRenderError{Category: "archive", Tag: name, Message: err.Error()}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &TemplateRenderError{Category: "archive", Message: err.Error()}
	}
	return buf.Bytes(), nil
}
