package projects

import (
	"embed"
	"html/template"
	"io"
	"regexp"
)

//go:embed templates/cards.html
var templateFS embed.FS

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// * Templates holds the "cards" and "card" definitions so host pages can
// * include them with {{template "cards" .}}.
var Templates = template.Must(template.New("projects").Funcs(template.FuncMap{
	"placeholders": func(n int) []struct{} { return make([]struct{}, n) },
	"swatch": func(c string) template.CSS {
		if !hexColor.MatchString(c) {
			c = DefaultLanguageColor
		}
		return template.CSS(c)
	},
}).ParseFS(templateFS, "templates/cards.html"))

// * Render writes the HTML fragment for v.
func Render(w io.Writer, v View) error {
	return Templates.ExecuteTemplate(w, "cards", v)
}
