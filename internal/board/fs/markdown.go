package fs

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const previewMaxLines = 2

// ExtractTitle returns the first H1 of a prompt, falling back to the first
// few words of its first paragraph. Empty prompts are "Untitled".
func ExtractTitle(markdown string) string {
	source := []byte(markdown)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var title, firstPara string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 {
				title = strings.TrimSpace(inlineText(node, source))
				return ast.WalkStop, nil
			}
		case *ast.Paragraph:
			if firstPara == "" {
				firstPara = inlineText(node, source)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	if title == "" {
		words := strings.Fields(firstPara)
		if len(words) > 6 {
			words = words[:6]
		}
		title = strings.Join(words, " ")
	}
	if title == "" {
		title = "Untitled"
	}

	return title
}

// ExtractPreview flattens the first paragraphs of a prompt into a single line
// of at most maxLen characters. Headings are skipped.
func ExtractPreview(markdown string, maxLen int) string {
	source := []byte(markdown)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var preview strings.Builder
	lineCount := 0

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindHeading:
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph, ast.KindFencedCodeBlock, ast.KindCodeBlock:
			if lineCount >= previewMaxLines {
				return ast.WalkStop, nil
			}

			var t string
			if n.Kind() == ast.KindParagraph {
				t = inlineText(n, source)
			} else {
				t = blockLines(n, source)
			}
			t = strings.Join(strings.Fields(t), " ")
			if t != "" {
				if preview.Len() > 0 {
					preview.WriteString(" ")
				}
				preview.WriteString(t)
				lineCount++
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return clip(preview.String(), maxLen)
}

// inlineText concatenates the text leaves under n, turning line breaks
// into spaces
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.CodeSpan:
			for child := t.FirstChild(); child != nil; child = child.NextSibling() {
				if txt, ok := child.(*ast.Text); ok {
					b.Write(txt.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func blockLines(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

// clip shortens s to maxLen characters, marking the cut with "..."
func clip(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
