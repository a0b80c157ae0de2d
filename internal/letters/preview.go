package letters

import (
	"html"
	"strings"
	"sync"
	"time"

	"github.com/osteele/liquid"
)

// previewLayout is the HTML shell the on-screen letter preview renders
// into. The letter body arrives as plain-text paragraphs; everything
// else is chrome.
const previewLayout = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>{{ company | escape }} - Vista previa</title></head>
<body>
<header><strong>{{ company | escape }}</strong></header>
<main>
{% for p in paragraphs %}<p>{{ p | escape }}</p>
{% endfor %}</main>
<footer>Generado el {{ generated_at }}</footer>
</body>
</html>
`

// PreviewService renders an HTML approximation of a letter so users can
// check the filled-in values before downloading the document.
type PreviewService struct {
	engine *liquid.Engine
	once   sync.Once
	tpl    *liquid.Template
	Now    func() time.Time
}

// NewPreviewService creates a preview renderer.
func NewPreviewService() *PreviewService {
	engine := liquid.NewEngine()
	engine.RegisterFilter("escape", func(s string) string {
		return html.EscapeString(s)
	})
	return &PreviewService{engine: engine, Now: time.Now}
}

// Preview renders the template archive with the given values and
// returns the letter body as an HTML page. The document part's
// paragraphs become <p> elements; headers and footers are skipped since
// the preview has its own chrome.
func (ps *PreviewService) Preview(archiveBytes []byte, values map[string]string, companyName string) (string, error) {
	rendered, err := Render(archiveBytes, values)
	if err != nil {
		return "", err
	}
	a, err := OpenArchive(rendered)
	if err != nil {
		return "", err
	}
	body, _ := a.Part("word/document.xml")

	var parse error
	ps.once.Do(func() {
		ps.tpl, parse = ps.engine.ParseString(previewLayout)
	})
	if parse != nil {
		return "", &TemplateRenderError{Category: "preview", Message: parse.Error()}
	}
	if ps.tpl == nil {
		return "", &TemplateRenderError{Category: "preview", Message: "preview layout failed to parse"}
	}

	out, err := ps.tpl.RenderString(map[string]interface{}{
		"company":      companyName,
		"paragraphs":   paragraphTexts(body),
		"generated_at": ps.Now().Format(dateLayout),
	})
	if err != nil {
		return "", &TemplateRenderError{Category: "preview", Message: err.Error()}
	}
	return out, nil
}

// paragraphTexts flattens each paragraph of a body part to plain text,
// dropping empty paragraphs.
func paragraphTexts(rawXML string) []string {
	var out []string
	for _, chunk := range strings.Split(rawXML, "</w:p>") {
		text := strings.TrimSpace(flattenRuns(chunk))
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}
