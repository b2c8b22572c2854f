/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"time"
)

// PageRenderer renderes web pages throuh a set of templates
type PageRenderer struct {
	templates map[string]*template.Template
}

// Creates a page renderer with the given set:
//
//	The key is a template path
//	The value is a set of paths of templates with layouts
//
// Every set is parsed with funcs available.
func NewPageRenderer(tmplMap map[string][]string, funcs template.FuncMap) (*PageRenderer, error) {
	templates := make(map[string]*template.Template)

	for k, v := range tmplMap {
		if len(v) == 0 {
			return nil, fmt.Errorf("Template set is empty{%s}", k)
		}
		t, err := template.New(filepath.Base(v[0])).Funcs(funcs).ParseFiles(v...)
		if err != nil {
			return nil, err
		}
		templates[k] = t
	}
	return &PageRenderer{templates: templates}, nil
}

// Renders the template with name "name"
// It returns an error if the corresponding template is not present
func (pr *PageRenderer) RenderTemplate(wr io.Writer, name string, data any) error {
	if t, ok := pr.templates[name]; ok {
		return t.ExecuteTemplate(wr, name, data)
	}
	return fmt.Errorf("Template is missing{%s}", name)
}

// RenderFragment executes the sub-template fragment of page into memory,
// for responses that are cached before being embedded in a page.
func (pr *PageRenderer) RenderFragment(page, fragment string, data any) ([]byte, error) {
	t, ok := pr.templates[page]
	if !ok {
		return nil, fmt.Errorf("Template is missing{%s}", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, fragment, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pr *PageRenderer) Has(name string) bool {
	_, ok := pr.templates[name]
	return ok
}

// Funcs is the helper set every template is parsed with. imageURL resolves
// blob keys into links.
func Funcs(imageURL func(key string) string) template.FuncMap {
	return template.FuncMap{
		"imageURL": imageURL,
		"date": func(t time.Time) string {
			return t.Format("2 January 2006")
		},
		"datetime": func(t time.Time) string {
			return t.Format("2 January 2006, 15:04")
		},
	}
}
