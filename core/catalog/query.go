package catalog

import (
	"fmt"
	"strings"
)

// gameFields is the projection requested for every game record.
const gameFields = "name, slug, summary, first_release_date, " +
	"cover.url, cover.image_id, " +
	"artworks.url, artworks.image_id, " +
	"platforms.name, platforms.id, genres.name, " +
	"involved_companies.company.name, involved_companies.developer"

// BuildGamesQuery builds the Apicalypse body matching exactly the given slugs.
func BuildGamesQuery(slugs []string) string {
	quoted := make([]string, len(slugs))
	for i, s := range slugs {
		quoted[i] = Quote(s)
	}
	return fmt.Sprintf("fields %s; where slug = (%s); limit %d;",
		gameFields, strings.Join(quoted, ","), len(slugs))
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Quote renders s as an Apicalypse string literal.
func Quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
