package github

import "encoding/json"

// * Repository is the subset of GET /repos/{owner}/{name} used for cards.
// * Nullable fields are pointers so absent and null stay distinguishable
// * from empty values.
type Repository struct {
	Name            string   `json:"name"`
	SvnURL          string   `json:"svn_url"`
	Description     *string  `json:"description"`
	Language        *string  `json:"language"`
	License         *License `json:"license"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	PushedAt        *string  `json:"pushed_at"`
}

type License struct {
	SPDXID string `json:"spdx_id"`
}

// * UnmarshalJSON accepts any JSON document. A field holding an unexpected
// * type is left at its zero value, and a body that is not an object
// * yields an empty Repository. Only malformed JSON is an error.
func (r *Repository) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Repository{}
	fields, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	r.Name, _ = fields["name"].(string)
	r.SvnURL, _ = fields["svn_url"].(string)
	r.Description = stringField(fields, "description")
	r.Language = stringField(fields, "language")
	r.PushedAt = stringField(fields, "pushed_at")
	r.StargazersCount = intField(fields, "stargazers_count")
	r.ForksCount = intField(fields, "forks_count")

	if license, ok := fields["license"].(map[string]any); ok {
		id, _ := license["spdx_id"].(string)
		r.License = &License{SPDXID: id}
	}
	return nil
}

func stringField(fields map[string]any, key string) *string {
	if s, ok := fields[key].(string); ok {
		return &s
	}
	return nil
}

func intField(fields map[string]any, key string) int {
	if n, ok := fields[key].(float64); ok {
		return int(n)
	}
	return 0
}
