// Package template renders selected records through a text/template.
package template

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/berquerant/jsongrep/internal/pointer"
)

// Renderer formats one decoded record per Render call. The template's dot is
// the record itself.
type Renderer struct {
	tmpl *template.Template
}

// New parses text as the output template.
func New(text string) (*Renderer, error) {
	tmpl, err := template.New("output").Funcs(FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid output template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template against record.
func (r *Renderer) Render(record any) (string, error) {
	var buf strings.Builder
	if err := r.tmpl.Execute(&buf, record); err != nil {
		return "", fmt.Errorf("render output template: %w", err)
	}
	return buf.String(), nil
}

// FuncMap returns the functions available to output templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"uuid": generateUUIDv4,

		"now":       timeRFC3339,
		"timestamp": timeUnix,

		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"trim":  strings.TrimSpace,

		"ptr":  resolvePath,
		"json": encodeJSON,
	}
}

func generateUUIDv4() string {
	return uuid.New().String()
}

func timeRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

func timeUnix() int64 {
	return time.Now().Unix()
}

// resolvePath looks up a pointer or JSONPath within the record:
// {{ptr . "/name"}}. An unresolved path renders as <no value>.
func resolvePath(record any, path string) any {
	v, ok := pointer.Resolve(path, record)
	if !ok {
		return nil
	}
	return v
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
