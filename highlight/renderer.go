package highlight

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{if .Title}}{{.Title}}{{else}}Code snippet{{end}}</title>
<style>
{{.CSS}}</style>
</head>
<body>
{{if .Title}}<h2>{{.Title}}</h2>
{{end}}{{.Body}}</body>
</html>
`))

// Render produces a complete, self-contained HTML document for the
// given source text. It is pure: identical inputs yield byte-identical
// output. The language and style tags must already be validated against
// the registry; an unregistered tag here is a configuration error.
func Render(code, language, style, title string, linenos bool) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("no lexer registered for language %q", language)
	}
	lexer = chroma.Coalesce(lexer)

	st, ok := styles.Registry[style]
	if !ok {
		return "", fmt.Errorf("no style registered for %q", style)
	}

	formatter := html.New(
		html.WithClasses(true),
		html.WithLineNumbers(linenos),
		html.LineNumbersInTable(linenos),
	)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise source: %w", err)
	}

	var css bytes.Buffer
	if err := formatter.WriteCSS(&css, st); err != nil {
		return "", fmt.Errorf("failed to render stylesheet: %w", err)
	}

	var body bytes.Buffer
	if err := formatter.Format(&body, st, iterator); err != nil {
		return "", fmt.Errorf("failed to render source: %w", err)
	}

	var doc bytes.Buffer
	err = documentTemplate.Execute(&doc, struct {
		Title string
		CSS   template.CSS
		Body  template.HTML
	}{
		Title: title,
		CSS:   template.CSS(css.String()),
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return "", err
	}

	return doc.String(), nil
}
