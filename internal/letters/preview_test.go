package letters_test

import (
	"strings"
	"testing"

	"github.com/talentohq/ats-server/internal/letters"
)

func TestPreview(t *testing.T) {
	b := bodyTemplate(t,
		`<w:p><w:r><w:t>Estimado {{Nombre}},</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Bienvenido al equipo.</w:t></w:r></w:p>`)

	ps := letters.NewPreviewService()
	ps.Now = fixedClock

	html, err := ps.Preview(b, map[string]string{"Nombre": "Ana Ruiz"}, "Talento SAC")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(html, "<p>Estimado Ana Ruiz,</p>") {
		t.Fatalf("body paragraph missing: %s", html)
	}
	if !strings.Contains(html, "<p>Bienvenido al equipo.</p>") {
		t.Fatalf("second paragraph missing: %s", html)
	}
	if !strings.Contains(html, "Talento SAC") {
		t.Fatalf("company missing: %s", html)
	}
	if !strings.Contains(html, "Generado el 15/03/2025") {
		t.Fatalf("generated date missing: %s", html)
	}
}

func TestPreviewEscapesValues(t *testing.T) {
	b := bodyTemplate(t, `<w:p><w:r><w:t>{{x}}</w:t></w:r></w:p>`)
	ps := letters.NewPreviewService()

	html, err := ps.Preview(b, map[string]string{"x": `<script>alert(1)</script>`}, "Talento")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("unescaped value in preview: %s", html)
	}
}

func TestPreviewCorruptTemplate(t *testing.T) {
	ps := letters.NewPreviewService()
	if _, err := ps.Preview([]byte("bad"), nil, "Talento"); err == nil {
		t.Fatal("expected error")
	}
}
