package letters

import (
	"sort"
	"strings"
)

// Render substitutes placeholder values into a template archive and
// returns the serialized document bytes. Placeholders may span adjacent
// text runs; the value lands in the first run of the span and the
// remaining runs of the span are emptied, which keeps the surrounding
// markup untouched. Placeholders with no entry in values are left as-is.
//
// An opening {{ with no closing }} in any text part fails the whole
// render with a TemplateRenderError, nothing is written.
func Render(archiveBytes []byte, values map[string]string) ([]byte, error) {
	a, err := OpenArchive(archiveBytes)
	if err != nil {
		return nil, err
	}
	for _, part := range a.TextParts() {
		raw, _ := a.Part(part)
		rendered, err := renderPart(raw, values)
		if err != nil {
			return nil, err
		}
		if rendered != raw {
			a.SetPart(part, rendered)
		}
	}
	return a.Serialize()
}

// segment is one run-text region of a part: its raw byte range in the
// part XML and its decoded text.
type segment struct {
	rawStart, rawEnd int
	text             string
	flatStart        int
	modified         bool
}

func renderPart(raw string, values map[string]string) (string, error) {
	locs := runTextRe.FindAllStringSubmatchIndex(raw, -1)
	if len(locs) == 0 {
		return raw, nil
	}

	segs := make([]segment, len(locs))
	var flat strings.Builder
	for i, loc := range locs {
		text := entityDecoder.Replace(raw[loc[2]:loc[3]])
		segs[i] = segment{rawStart: loc[2], rawEnd: loc[3], text: text, flatStart: flat.Len()}
		flat.WriteString(text)
	}
	flatText := flat.String()

	matches := placeholderRe.FindAllStringSubmatchIndex(flatText, -1)
	if err := checkUnclosed(flatText, matches); err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return raw, nil
	}

	// Apply right-to-left so original flat offsets stay valid for the
	// earlier matches.
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		name := strings.TrimSpace(flatText[m[2]:m[3]])
		value, ok := values[name]
		if !ok {
			continue
		}

		si := segmentAt(segs, m[0])
		sj := segmentAt(segs, m[1]-1)
		localStart := m[0] - segs[si].flatStart
		if si == sj {
			localEnd := m[1] - segs[si].flatStart
			segs[si].text = segs[si].text[:localStart] + value + segs[si].text[localEnd:]
			segs[si].modified = true
			continue
		}
		segs[si].text = segs[si].text[:localStart] + value
		segs[si].modified = true
		for k := si + 1; k < sj; k++ {
			segs[k].text = ""
			segs[k].modified = true
		}
		localEnd := m[1] - segs[sj].flatStart
		segs[sj].text = segs[sj].text[localEnd:]
		segs[sj].modified = true
	}

	// Splice modified segments back into the raw XML, last first.
	out := raw
	for i := len(segs) - 1; i >= 0; i-- {
		if !segs[i].modified {
			continue
		}
		out = out[:segs[i].rawStart] + entityEncoder.Replace(segs[i].text) + out[segs[i].rawEnd:]
	}
	return out, nil
}

// segmentAt finds the segment containing the given flat offset. Segment
// flat starts are sorted, so binary search works; offsets falling in a
// zero-length segment's position resolve to the preceding non-empty one.
func segmentAt(segs []segment, flatOffset int) int {
	i := sort.Search(len(segs), func(i int) bool { return segs[i].flatStart > flatOffset })
	return i - 1
}

// checkUnclosed rejects an opening brace pair with no closing pair.
// Braces inside a complete placeholder match are fine.
func checkUnclosed(flatText string, matches [][]int) error {
	pos := 0
	for {
		idx := strings.Index(flatText[pos:], "{{")
		if idx < 0 {
			return nil
		}
		abs := pos + idx
		covered := false
		for _, m := range matches {
			if abs >= m[0] && abs < m[1] {
				covered = true
				break
			}
		}
		if !covered {
			snippet := flatText[abs:]
			if len(snippet) > 30 {
				snippet = snippet[:30]
			}
			return &TemplateRenderError{
				Tag:      snippet,
				Category: "unclosed_tag",
				Message:  "placeholder opened but never closed",
			}
		}
		pos = abs + 2
	}
}
