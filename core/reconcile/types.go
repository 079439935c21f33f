package reconcile

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Status is the play status of a game in a library. The zero value means no status.
type Status string

const (
	StatusNone      Status = ""
	StatusPlayed    Status = "played"
	StatusCompleted Status = "completed"
	StatusRetired   Status = "retired"
	StatusShelved   Status = "shelved"
	StatusAbandoned Status = "abandoned"
)

// Statuses lists every valid non-empty status.
var Statuses = []Status{StatusPlayed, StatusCompleted, StatusRetired, StatusShelved, StatusAbandoned}

// Valid reports whether s is empty or one of Statuses.
func (s Status) Valid() bool {
	if s == StatusNone {
		return true
	}
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return StatusNone, fmt.Errorf("invalid status %q", raw)
	}
	return s, nil
}

// MarshalJSON renders the empty status as null.
func (s Status) MarshalJSON() ([]byte, error) {
	if s == StatusNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON accepts null as the empty status.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = StatusNone
		return nil
	}
	*s = Status(*raw)
	return nil
}

// Flags are the boolean library markers of a game.
type Flags struct {
	Playing  bool `json:"playing"`
	Backlog  bool `json:"backlog"`
	Wishlist bool `json:"wishlist"`
	Liked    bool `json:"liked"`
}

// Any reports whether at least one flag is set.
func (f Flags) Any() bool {
	return f.Playing || f.Backlog || f.Wishlist || f.Liked
}

// Merge sets every flag that is set in o. Flags are never cleared.
func (f *Flags) Merge(o Flags) {
	f.Playing = f.Playing || o.Playing
	f.Backlog = f.Backlog || o.Backlog
	f.Wishlist = f.Wishlist || o.Wishlist
	f.Liked = f.Liked || o.Liked
}

// StateRecord is the current library state of one game for one user.
type StateRecord struct {
	GameID    int64
	Slug      string
	Flags     Flags
	Status    Status
	UpdatedAt time.Time
}

// Empty reports whether the record carries nothing worth storing.
func (r StateRecord) Empty() bool {
	return !r.Flags.Any() && r.Status == StatusNone
}

// EventRecord is one immutable log entry for a game, optionally rated.
type EventRecord struct {
	GameID    int64
	Slug      string
	Flags     Flags
	Status    Status
	Rating    *int
	CreatedAt time.Time
}

// Aggregate is the merged view of one game across state and events.
type Aggregate struct {
	GameID      int64     `json:"game_id"`
	Slug        string    `json:"slug"`
	AvgRating   *int      `json:"avg_rating"`
	RatingCount int       `json:"rating_count"`
	Status      Status    `json:"status"`
	Playing     bool      `json:"playing"`
	Backlog     bool      `json:"backlog"`
	Wishlist    bool      `json:"wishlist"`
	Liked       bool      `json:"liked"`
	HasLog      bool      `json:"has_log"`
	LatestAt    time.Time `json:"latest_at"`
}

// Summary counts aggregates per library shelf.
type Summary struct {
	Total     int `json:"total"`
	Playing   int `json:"playing"`
	Played    int `json:"played"`
	Completed int `json:"completed"`
	Backlog   int `json:"backlog"`
	Wishlist  int `json:"wishlist"`
	Dropped   int `json:"dropped"`
	Shelved   int `json:"shelved"`
	Retired   int `json:"retired"`
	Liked     int `json:"liked"`
	Rated     int `json:"rated"`
}

// Shelf selects a subset of a library.
type Shelf string

const (
	ShelfAll       Shelf = "all"
	ShelfPlaying   Shelf = "playing"
	ShelfPlayed    Shelf = "played"
	ShelfCompleted Shelf = "completed"
	ShelfBacklog   Shelf = "backlog"
	ShelfWishlist  Shelf = "wishlist"
	ShelfDropped   Shelf = "dropped"
	ShelfShelved   Shelf = "shelved"
	ShelfRetired   Shelf = "retired"
	ShelfLiked     Shelf = "liked"
	ShelfRated     Shelf = "rated"
)

// ParseShelf validates a shelf name. The empty string selects ShelfAll.
func ParseShelf(raw string) (Shelf, error) {
	if raw == "" {
		return ShelfAll, nil
	}
	s := Shelf(raw)
	switch s {
	case ShelfAll, ShelfPlaying, ShelfPlayed, ShelfCompleted, ShelfBacklog, ShelfWishlist,
		ShelfDropped, ShelfShelved, ShelfRetired, ShelfLiked, ShelfRated:
		return s, nil
	}
	return "", fmt.Errorf("invalid shelf %q", raw)
}
