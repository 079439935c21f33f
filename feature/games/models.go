package games

// Game is the normalised catalog record served to clients and stored in the cache.
type Game struct {
	ID               int64      `json:"id,omitempty"`
	Slug             string     `json:"slug,omitempty"`
	Name             string     `json:"name"`
	Summary          string     `json:"summary,omitempty"`
	FirstReleaseDate int64      `json:"first_release_date,omitempty"`
	Cover            *Image     `json:"cover"`
	Artworks         []Image    `json:"artworks"`
	Platforms        []Platform `json:"platforms"`
	Genres           []Genre    `json:"genres"`
	Developers       []string   `json:"developers"`
}

// Image is a catalog image reference.
type Image struct {
	ID      int64  `json:"id,omitempty"`
	ImageID string `json:"image_id,omitempty"`
	URL     string `json:"url"`
}

type Platform struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ChunkError reports an upstream chunk that failed in partial mode.
type ChunkError struct {
	Slugs []string `json:"slugs"`
	Error string   `json:"error"`
}

// Result is the outcome of a batch resolve. Failures is only populated in partial mode.
type Result struct {
	Games    map[string]Game `json:"games"`
	Failures []ChunkError    `json:"failures,omitempty"`
}

// rawGame mirrors the IGDB games projection requested by catalog.BuildGamesQuery.
type rawGame struct {
	ID                int64             `json:"id"`
	Slug              string            `json:"slug"`
	Name              string            `json:"name"`
	Summary           string            `json:"summary"`
	FirstReleaseDate  int64             `json:"first_release_date"`
	Cover             *Image            `json:"cover"`
	Artworks          []Image           `json:"artworks"`
	Platforms         []Platform        `json:"platforms"`
	Genres            []Genre           `json:"genres"`
	InvolvedCompanies []rawInvolvedComp `json:"involved_companies"`
}

type rawInvolvedComp struct {
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
	Developer bool `json:"developer"`
}
