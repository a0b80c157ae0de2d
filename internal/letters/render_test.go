package letters_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/talentohq/ats-server/internal/letters"
)

func renderedBody(t *testing.T, out []byte) string {
	t.Helper()
	a, err := letters.OpenArchive(out)
	if err != nil {
		t.Fatalf("reopen rendered archive: %v", err)
	}
	body, ok := a.Part("word/document.xml")
	if !ok {
		t.Fatal("rendered archive lost its body part")
	}
	return body
}

func TestRenderSimple(t *testing.T) {
	b := bodyTemplate(t, `<w:p><w:r><w:t>Estimado {{Nombre}},</w:t></w:r></w:p>`)
	out, err := letters.Render(b, map[string]string{"Nombre": "Ana Ruiz"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	body := renderedBody(t, out)
	if !strings.Contains(body, "Estimado Ana Ruiz,") {
		t.Fatalf("value not substituted: %s", body)
	}
	if strings.Contains(body, "{{") {
		t.Fatalf("placeholder left behind: %s", body)
	}
}

func TestRenderSplitAcrossRuns(t *testing.T) {
	b := bodyTemplate(t, `<w:p><w:r><w:t>{{No</w:t></w:r><w:r><w:t>mb</w:t></w:r><w:r><w:t>re}} entra</w:t></w:r></w:p>`)
	out, err := letters.Render(b, map[string]string{"Nombre": "Ana"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	body := renderedBody(t, out)
	if !strings.Contains(body, "Ana") {
		t.Fatalf("value missing: %s", body)
	}
	if strings.Contains(body, "{{") || strings.Contains(body, "}}") {
		t.Fatalf("placeholder fragments left behind: %s", body)
	}
	// Markup outside the runs is untouched.
	if strings.Count(body, "<w:r>") != 3 {
		t.Fatalf("run structure changed: %s", body)
	}
	if !strings.Contains(body, " entra") {
		t.Fatalf("trailing text lost: %s", body)
	}
}

func TestRenderMultiplePlaceholdersOneRun(t *testing.T) {
	b := bodyTemplate(t, `<w:p><w:r><w:t>{{a}} y {{b}} y {{a}}</w:t></w:r></w:p>`)
	out, err := letters.Render(b, map[string]string{"a": "uno", "b": "dos"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	body := renderedBody(t, out)
	if !strings.Contains(body, "uno y dos y uno") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestRenderEscapesValues(t *testing.T) {
	b := bodyTemplate(t, `<w:p><w:r><w:t>{{x}}</w:t></w:r></w:p>`)
	out, err := letters.Render(b, map[string]string{"x": `a < b & c > d`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	body := renderedBody(t, out)
	if !strings.Contains(body, "a &lt; b &amp; c &gt; d") {
		t.Fatalf("value not XML-escaped: %s", body)
	}
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	b := bodyTemplate(t, `<w:p><w:r><w:t>{{conocido}} {{desconocido}}</w:t></w:r></w:p>`)
	out, err := letters.Render(b, map[string]string{"conocido": "sí"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	body := renderedBody(t, out)
	if !strings.Contains(body, "{{desconocido}}") {
		t.Fatalf("unknown placeholder should survive: %s", body)
	}
}

func TestRenderUnclosedTag(t *testing.T) {
	b := bodyTemplate(t, `<w:p><w:r><w:t>hola {{Nombre sin cierre</w:t></w:r></w:p>`)
	_, err := letters.Render(b, map[string]string{"Nombre": "Ana"})

	var rerr *letters.TemplateRenderError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected TemplateRenderError, got %v", err)
	}
	if rerr.Category != "unclosed_tag" {
		t.Fatalf("expected unclosed_tag, got %s", rerr.Category)
	}
	if !strings.HasPrefix(rerr.Tag, "{{Nombre") {
		t.Fatalf("expected offending tag snippet, got %q", rerr.Tag)
	}
}

func TestRenderCorruptArchive(t *testing.T) {
	_, err := letters.Render([]byte("nope"), nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRenderPreservesOtherParts(t *testing.T) {
	b := buildTemplate(t, map[string]string{
		"word/document.xml": wrapBody(`<w:p><w:r><w:t>{{x}}</w:t></w:r></w:p>`),
		"word/styles.xml":   `<w:styles>untouched</w:styles>`,
	})
	out, err := letters.Render(b, map[string]string{"x": "y"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	a, _ := letters.OpenArchive(out)
	styles, ok := a.Part("word/styles.xml")
	if !ok || styles != `<w:styles>untouched</w:styles>` {
		t.Fatalf("non-text part changed: %q", styles)
	}
}
