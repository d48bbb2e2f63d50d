package rag

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// LoadDir reads every .pdf and .md file directly under dir, in name
// order. A PDF page without a text layer is passed to t when t is set and
// skipped otherwise, as are pages that still come back empty.
func LoadDir(ctx context.Context, dir string, t Transcriber) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base dir: %w", err)
	}

	var pages []Page
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		path := filepath.Join(dir, e.Name())
		source := filepath.ToSlash(path)

		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pdf":
			loaded, err := loadPDF(ctx, path, source, t)
			if err != nil {
				return nil, err
			}
			pages = append(pages, loaded...)
		case ".md", ".markdown":
			p, err := loadMarkdown(path, source)
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(p.Text) != "" {
				pages = append(pages, p)
			}
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}

	slices.SortStableFunc(pages, func(a, b Page) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return a.Number - b.Number
	})
	return pages, nil
}

func loadPDF(ctx context.Context, path, source string, t Transcriber) ([]Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var pages []Page
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		content, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract %s page %d: %w", path, i, err)
		}
		if strings.TrimSpace(content) == "" && t != nil {
			if content, err = t.Transcribe(ctx, path, i); err != nil {
				return nil, fmt.Errorf("transcribe %s page %d: %w", path, i, err)
			}
		}
		if strings.TrimSpace(content) == "" {
			continue
		}

		pages = append(pages, Page{Source: source, Number: i - 1, Text: content})
	}
	return pages, nil
}

func loadMarkdown(path, source string) (Page, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Page{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Page{Source: source, Number: 0, Text: MarkdownText(src)}, nil
}

// MarkdownText renders Markdown to plain text: markup is dropped and each
// block ends with a blank line so the splitter can cut between blocks.
func MarkdownText(src []byte) string {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock && n.Kind() != ast.KindDocument && n.Kind() != ast.KindList {
				buf.WriteString("\n\n")
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()
			for i := range lines.Len() {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(collapseBlankLines(buf.String()))
}

func collapseBlankLines(s string) string {
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}
