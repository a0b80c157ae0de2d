package letters

import (
	"regexp"
	"sort"
	"strings"
)

var (
	runTextRe     = regexp.MustCompile(`(?s)<w:t[^>]*>(.*?)</w:t>`)
	placeholderRe = regexp.MustCompile(`\{\{([^}]+)\}\}`)

	entityDecoder = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")
	entityEncoder = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// flattenRuns concatenates the text content of every run in a part, in
// document order, dropping all markup and decoding the three standard
// entities. This is what makes placeholders split across adjacent runs
// detectable.
func flattenRuns(rawXML string) string {
	var b strings.Builder
	for _, m := range runTextRe.FindAllStringSubmatch(rawXML, -1) {
		b.WriteString(entityDecoder.Replace(m[1]))
	}
	return b.String()
}

// DetectFields scans a template archive for {{placeholder}} markers in
// the body, headers, and footers. Each part is scanned twice: once on
// the flattened run text (catches placeholders split across runs) and
// once on the raw markup as a fallback. Names are deduplicated
// case-insensitively keeping the first-seen casing and returned sorted.
//
// Zero detected fields is a valid outcome, distinct from a parse
// failure.
func DetectFields(archiveBytes []byte) ([]string, error) {
	a, err := OpenArchive(archiveBytes)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	fields := []string{}
	collect := func(text string) {
		for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if !plausibleField(name) {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			fields = append(fields, name)
		}
	}

	for _, part := range a.TextParts() {
		raw, _ := a.Part(part)
		collect(flattenRuns(raw))
		collect(raw)
	}

	sort.Strings(fields)
	return fields, nil
}

// plausibleField guards against markup leaking into a match when the
// raw-markup fallback pass runs over unflattened XML.
func plausibleField(name string) bool {
	if name == "" || len(name) > 100 {
		return false
	}
	if strings.ContainsAny(name, "<>") {
		return false
	}
	lower := strings.ToLower(name)
	for _, frag := range []string{"xml", "w:t", "w:r"} {
		if strings.Contains(lower, frag) {
			return false
		}
	}
	return true
}
