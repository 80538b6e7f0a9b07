package render

import (
	"regexp"
	"strings"
)

type blockKind int

const (
	blockGap blockKind = iota
	blockParagraph
)

// span is a run of text sharing one style. A non-empty link makes it a
// clickable hyperlink to that target.
type span struct {
	text string
	bold bool
	link string
}

type block struct {
	kind  blockKind
	spans []span
}

var (
	// inlinePattern matches, in priority order, **bold**, [label](url) and a
	// bare http(s) URL.
	inlinePattern = regexp.MustCompile(`\*\*(.+?)\*\*|\[([^\]]+)\]\(([^)\s]+)\)|(https?://[^\s)\]>]+)`)

	headingPattern = regexp.MustCompile(`^\s*#{1,6}\s+`)

	// sectionHeaderPattern matches the per-step sub-headers the workflow
	// prompt asks for, bolded or not, optionally as a list item.
	sectionHeaderPattern = regexp.MustCompile(`^\s*(?:[-*+]\s+)?(?:\*\*)?(?:Action|Tools|Time Estimate|Estimated Cost|Alternative)\b`)
)

// layout splits text into paragraphs and gaps. A blank line becomes a gap,
// and a gap is also inserted before a section header that directly follows
// a non-blank line, so every Action/Tools/... entry is visually separated.
func layout(text string) []block {
	var blocks []block
	prevParagraph := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		line = strings.ReplaceAll(line, "\t", "    ")
		if strings.TrimSpace(line) == "" {
			blocks = append(blocks, block{kind: blockGap})
			prevParagraph = false
			continue
		}
		if prevParagraph && sectionHeaderPattern.MatchString(line) {
			blocks = append(blocks, block{kind: blockGap})
		}
		blocks = append(blocks, block{kind: blockParagraph, spans: parseLine(line)})
		prevParagraph = true
	}
	return blocks
}

// parseLine converts one markdown line into styled spans. A heading line is
// bold throughout with its # markers removed.
func parseLine(line string) []span {
	line = strings.TrimRight(line, " ")
	if loc := headingPattern.FindStringIndex(line); loc != nil {
		return parseInline(line[loc[1]:], true)
	}
	return parseInline(line, false)
}

func parseInline(s string, bold bool) []span {
	var spans []span
	pos := 0
	for _, m := range inlinePattern.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > pos {
			spans = append(spans, span{text: s[pos:m[0]], bold: bold})
		}
		switch {
		case m[2] >= 0: // **bold**, may contain links
			spans = append(spans, parseInline(s[m[2]:m[3]], true)...)
		case m[4] >= 0: // [label](url)
			spans = append(spans, span{text: s[m[4]:m[5]], bold: bold, link: s[m[6]:m[7]]})
		case m[8] >= 0: // bare URL
			spans = append(spans, span{text: s[m[8]:m[9]], bold: bold, link: s[m[8]:m[9]]})
		}
		pos = m[1]
	}
	if pos < len(s) {
		spans = append(spans, span{text: s[pos:], bold: bold})
	}
	return spans
}
