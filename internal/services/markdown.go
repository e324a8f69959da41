package services

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	headingMarker = regexp.MustCompile(`^#{1,6}[ \t]+`)
	closingHashes = regexp.MustCompile(`[ \t]+#+$`)
	bulletMarker  = regexp.MustCompile(`^[-*][ \t]+`)
)

// MarkdownStripper reduces a single line of model output to plain text.
type MarkdownStripper struct {
	md goldmark.Markdown
}

func NewMarkdownStripper() *MarkdownStripper {
	return &MarkdownStripper{md: goldmark.New()}
}

// StripLine removes a leading ATX heading marker, turns a "-" or "*" bullet
// into "• " and drops emphasis and code span delimiters. Links become
// "label (url)" and inline HTML is kept as written. Any other block
// construct ("+" items, numbered items, quotes, rules, HTML blocks) is
// returned unchanged, so content that only looks like Markdown survives.
func (m *MarkdownStripper) StripLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}

	prefix, rest := "", line
	if loc := headingMarker.FindStringIndex(rest); loc != nil {
		rest = closingHashes.ReplaceAllString(rest[loc[1]:], "")
	} else if loc := bulletMarker.FindStringIndex(rest); loc != nil {
		prefix, rest = "• ", rest[loc[1]:]
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return line
	}

	plain, ok := m.inline(rest)
	if !ok {
		return prefix + rest
	}
	return prefix + plain
}

// inline renders s as plain text when it parses as exactly one paragraph.
func (m *MarkdownStripper) inline(s string) (string, bool) {
	src := []byte(s)
	doc := m.md.Parser().Parse(text.NewReader(src))

	para, ok := doc.FirstChild().(*ast.Paragraph)
	if !ok || doc.ChildCount() != 1 {
		return "", false
	}

	var (
		sb         strings.Builder
		labelStart int
	)
	_ = ast.Walk(para, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				sb.Write(node.Segment.Value(src))
			}
		case *ast.String:
			if entering {
				sb.Write(node.Value)
			}
		case *ast.RawHTML:
			if entering {
				for i := 0; i < node.Segments.Len(); i++ {
					seg := node.Segments.At(i)
					sb.Write(seg.Value(src))
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			if entering {
				sb.Write(node.Label(src))
			}
			return ast.WalkSkipChildren, nil
		case *ast.Link:
			if entering {
				labelStart = sb.Len()
			} else {
				writeDestination(&sb, labelStart, node.Destination)
			}
		case *ast.Image:
			if entering {
				labelStart = sb.Len()
			} else {
				writeDestination(&sb, labelStart, node.Destination)
			}
		}
		return ast.WalkContinue, nil
	})

	plain := strings.TrimSpace(sb.String())
	if plain == "" {
		return "", false
	}
	return plain, true
}

// writeDestination appends " (dest)" unless the label already is dest.
func writeDestination(sb *strings.Builder, labelStart int, dest []byte) {
	if len(dest) == 0 {
		return
	}
	label := sb.String()[labelStart:]
	if label == string(dest) {
		return
	}
	if label == "" {
		sb.Write(dest)
		return
	}
	sb.WriteString(" (")
	sb.Write(dest)
	sb.WriteString(")")
}
