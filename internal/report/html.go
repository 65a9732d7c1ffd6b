package report

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; color: #222; }
table { border-collapse: collapse; margin-bottom: 1.5rem; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.75rem; text-align: left; }
th { background: #f2f5f0; }
</style>
</head>
<body>
`

const htmlFoot = "</body>\n</html>\n"

func htmlPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// RenderHTML renders the Markdown report to a standalone, sanitized HTML
// page. precision < 0 means DefaultPrecision.
func RenderHTML(w io.Writer, exp Export, precision int) error {
	var md bytes.Buffer
	if err := RenderMarkdown(&md, exp, precision); err != nil {
		return err
	}

	conv := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := conv.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}
	clean := htmlPolicy().SanitizeBytes(body.Bytes())

	title := "Dairy Farm Carbon Report"
	if exp.Meta.FarmName != "" {
		title += ": " + exp.Meta.FarmName
	}
	if _, err := fmt.Fprintf(w, htmlHead, html.EscapeString(title)); err != nil {
		return err
	}
	if _, err := w.Write(clean); err != nil {
		return err
	}
	_, err := io.WriteString(w, htmlFoot)
	return err
}
