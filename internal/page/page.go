// Package page renders the "View Debug.log" admin page.
package page

import (
	"fmt"
	"html/template"
	"io"
)

// Title is the page and menu title.
const Title = "View Debug.log"

// Data is what the page needs from a loaded tail.
type Data struct {
	Path  string
	Lines int
	// Body is already-formatted markup and is embedded without escaping.
	Body string
}

var tmpl = template.Must(template.New("page").Parse(`<div class="wrap">
	<h2>{{.Title}}</h2>
	<p>Reading last <strong>{{.Lines}}</strong> lines from <strong>"{{.Path}}"</strong></p>
	<style type="text/css">
		.debuglog {
			white-space: pre-wrap;
		}
		.debuglog .error {
			color: #C00;
		}
		.debuglog .Warning,
		.debuglog .Notice {
			color: #FC0;
		}
	</style>
	<pre class="debuglog">{{.Body}}</pre>
</div>
`))

// Render writes the page fragment for d to w.
func Render(w io.Writer, d Data) error {
	err := tmpl.Execute(w, struct {
		Title string
		Path  string
		Lines int
		Body  template.HTML
	}{
		Title: Title,
		Path:  d.Path,
		Lines: d.Lines,
		Body:  template.HTML(d.Body),
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// Document wraps Render in a minimal standalone HTML document.
func Document(w io.Writer, d Data) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>"+template.HTMLEscapeString(Title)+"</title></head><body>\n"); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	if err := Render(w, d); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "</body></html>\n"); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
