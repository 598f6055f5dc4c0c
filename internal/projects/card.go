package projects

import (
	"time"

	"github.com/KOFI-GYIMAH/portfolio/internal/github"
)

const none = "None"

// * Card is the display model of one project tile.
type Card struct {
	Title         string `json:"title"`
	Href          string `json:"href"`
	Description   string `json:"description"`
	Language      string `json:"language"`
	LanguageColor string `json:"language_color"`
	License       string `json:"license"`
	Stars         int    `json:"stars"`
	Forks         int    `json:"forks"`
	Updated       string `json:"updated"`
	ShowData      bool   `json:"show_data"`
}

// * StaticCard is appended after the fetched cards. It is not a repository,
// * so its language/star/fork row is hidden.
var StaticCard = Card{
	Title:         "Yukio Lumina",
	Href:          "https://discord.com/oauth2/authorize?client_id=510749305208963092&permissions=1644971949567&scope=applications.commands+bot",
	Description:   "A Golang based, Discord bot that can play music.",
	Language:      none,
	LanguageColor: DefaultLanguageColor,
	License:       "GPL-3.0",
	Updated:       none,
	ShowData:      false,
}

// * CardFromRepository derives a card from a fetched repository, substituting
// * fallbacks for absent display fields.
func CardFromRepository(repo *github.Repository) Card {
	card := Card{
		Title:         repo.Name,
		Href:          repo.SvnURL,
		Description:   orNone(repo.Description),
		Language:      orNone(repo.Language),
		LanguageColor: DefaultLanguageColor,
		License:       none,
		Stars:         max(repo.StargazersCount, 0),
		Forks:         max(repo.ForksCount, 0),
		Updated:       FormatPushedAt(repo.PushedAt),
		ShowData:      true,
	}

	if repo.Language != nil {
		card.LanguageColor = LanguageColor(*repo.Language)
	}
	if repo.License != nil && repo.License.SPDXID != "" {
		card.License = repo.License.SPDXID
	}
	return card
}

// * pushedAtLayouts are tried in order. Zone-less forms are read as UTC.
var pushedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateTime,
	time.DateOnly,
}

// * FormatPushedAt renders a push timestamp as DD/MM/YYYY in UTC. Absent or
// * empty timestamps render "None", unparseable ones "Invalid Date".
func FormatPushedAt(pushedAt *string) string {
	if pushedAt == nil || *pushedAt == "" {
		return none
	}
	for _, layout := range pushedAtLayouts {
		if t, err := time.Parse(layout, *pushedAt); err == nil {
			return t.UTC().Format("02/01/2006")
		}
	}
	return "Invalid Date"
}

func orNone(s *string) string {
	if s == nil || *s == "" {
		return none
	}
	return *s
}
