package reconcile

import (
	"math"
	"sort"
)

// entry accumulates one slug during the fold.
type entry struct {
	agg   Aggregate
	sum   int
	count int
}

// Reconcile merges state and event records into one aggregate per slug.
//
// State records seed entries verbatim. Events OR their flags into the entry (flags are never
// reset), contribute their status only while the entry has none, append their rating and move
// LatestAt forward. An event for a slug without state seeds the entry from its own flags and
// status. Every slug present in either input yields exactly one aggregate.
func Reconcile(states []StateRecord, events []EventRecord) map[string]Aggregate {
	index := make(map[string]*entry, len(states))

	for _, s := range states {
		index[s.Slug] = &entry{agg: Aggregate{
			GameID:   s.GameID,
			Slug:     s.Slug,
			Status:   s.Status,
			Playing:  s.Flags.Playing,
			Backlog:  s.Flags.Backlog,
			Wishlist: s.Flags.Wishlist,
			Liked:    s.Flags.Liked,
			LatestAt: s.UpdatedAt,
		}}
	}

	for _, ev := range events {
		e, ok := index[ev.Slug]
		if !ok {
			e = &entry{agg: Aggregate{
				GameID:   ev.GameID,
				Slug:     ev.Slug,
				Status:   ev.Status,
				LatestAt: ev.CreatedAt,
			}}
			index[ev.Slug] = e
		}

		e.agg.HasLog = true
		merge(&e.agg, ev.Flags)
		if e.agg.Status == StatusNone && ev.Status != StatusNone {
			e.agg.Status = ev.Status
		}
		if ev.Rating != nil {
			e.sum += *ev.Rating
			e.count++
		}
		if ev.CreatedAt.After(e.agg.LatestAt) {
			e.agg.LatestAt = ev.CreatedAt
		}
	}

	out := make(map[string]Aggregate, len(index))
	for slug, e := range index {
		e.agg.RatingCount = e.count
		if e.count > 0 {
			avg := int(math.Round(float64(e.sum) / float64(e.count)))
			e.agg.AvgRating = &avg
		}
		out[slug] = e.agg
	}
	return out
}

func merge(agg *Aggregate, f Flags) {
	flags := Flags{Playing: agg.Playing, Backlog: agg.Backlog, Wishlist: agg.Wishlist, Liked: agg.Liked}
	flags.Merge(f)
	agg.Playing, agg.Backlog, agg.Wishlist, agg.Liked = flags.Playing, flags.Backlog, flags.Wishlist, flags.Liked
}

// Summarize counts the aggregates per shelf. Abandoned games count as dropped.
func Summarize(aggs map[string]Aggregate) Summary {
	var s Summary
	for _, a := range aggs {
		s.Total++
		if a.Playing {
			s.Playing++
		}
		if a.Backlog {
			s.Backlog++
		}
		if a.Wishlist {
			s.Wishlist++
		}
		if a.Liked {
			s.Liked++
		}
		if a.RatingCount > 0 {
			s.Rated++
		}
		switch a.Status {
		case StatusPlayed:
			s.Played++
		case StatusCompleted:
			s.Completed++
		case StatusAbandoned:
			s.Dropped++
		case StatusShelved:
			s.Shelved++
		case StatusRetired:
			s.Retired++
		}
	}
	return s
}

// Matches reports whether a belongs on shelf.
func (a Aggregate) Matches(shelf Shelf) bool {
	switch shelf {
	case ShelfAll:
		return true
	case ShelfPlaying:
		return a.Playing
	case ShelfBacklog:
		return a.Backlog
	case ShelfWishlist:
		return a.Wishlist
	case ShelfLiked:
		return a.Liked
	case ShelfRated:
		return a.RatingCount > 0
	case ShelfPlayed:
		return a.Status == StatusPlayed
	case ShelfCompleted:
		return a.Status == StatusCompleted
	case ShelfDropped:
		return a.Status == StatusAbandoned
	case ShelfShelved:
		return a.Status == StatusShelved
	case ShelfRetired:
		return a.Status == StatusRetired
	}
	return false
}

// Select returns the aggregates on shelf, most recent activity first, ties by slug.
func Select(aggs map[string]Aggregate, shelf Shelf) []Aggregate {
	out := make([]Aggregate, 0, len(aggs))
	for _, a := range aggs {
		if a.Matches(shelf) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LatestAt.Equal(out[j].LatestAt) {
			return out[i].LatestAt.After(out[j].LatestAt)
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}
