package projects

// * DefaultLanguageColor is the swatch used for unknown or absent languages.
const DefaultLanguageColor = "#737373"

var languageColors = map[string]string{
	"Vue":        "#4fc08d",
	"JavaScript": "#f1e05a",
	"TypeScript": "#2b7489",
	"Python":     "#3572A5",
	"Java":       "#b07219",
	"C++":        "#f34b7d",
	"C#":         "#239120",
	"PHP":        "#4F5D95",
	"Ruby":       "#701516",
	"Go":         "#00ADD8",
	"Rust":       "#dea584",
	"Swift":      "#ffac45",
	"Kotlin":     "#F18E33",
	"Dart":       "#00B4AB",
	"HTML":       "#e34c26",
	"CSS":        "#1572B6",
	"Shell":      "#89e051",
}

// * LanguageColor returns the swatch colour for a language name. Lookup is
// * exact and case-sensitive, matching GitHub's language labels.
func LanguageColor(language string) string {
	if c, ok := languageColors[language]; ok {
		return c
	}
	return DefaultLanguageColor
}
