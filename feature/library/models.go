package library

import (
	"time"
	"unicode/utf8"

	"uloggd/core/reconcile"
)

// MaxSlugLength bounds stored game slugs, in bytes.
const MaxSlugLength = 255

// truncateSlug cuts slug to MaxSlugLength bytes without splitting a UTF-8 sequence.
func truncateSlug(slug string) string {
	if len(slug) <= MaxSlugLength {
		return slug
	}
	cut := MaxSlugLength
	for cut > 0 && !utf8.RuneStart(slug[cut]) {
		cut--
	}
	return slug[:cut]
}

// UserGame is the current library state of one game for one user.
type UserGame struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"column:user_id;size:36;not null;uniqueIndex:idx_user_games_user_game" json:"user_id"`
	GameID    int64     `gorm:"column:game_id;not null;uniqueIndex:idx_user_games_user_game" json:"game_id"`
	GameSlug  string    `gorm:"column:game_slug;size:255;not null" json:"game_slug"`
	Status    *string   `gorm:"column:status;size:16" json:"status"`
	Playing   bool      `gorm:"column:playing;not null;default:false" json:"playing"`
	Backlog   bool      `gorm:"column:backlog;not null;default:false" json:"backlog"`
	Wishlist  bool      `gorm:"column:wishlist;not null;default:false" json:"wishlist"`
	Liked     bool      `gorm:"column:liked;not null;default:false" json:"liked"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName pins the table name for gorm.
func (UserGame) TableName() string {
	return "user_games"
}

// ToState projects the row onto the reconciler input.
func (u UserGame) ToState() reconcile.StateRecord {
	return reconcile.StateRecord{
		GameID:    u.GameID,
		Slug:      u.GameSlug,
		Flags:     reconcile.Flags{Playing: u.Playing, Backlog: u.Backlog, Wishlist: u.Wishlist, Liked: u.Liked},
		Status:    statusOf(u.Status),
		UpdatedAt: u.UpdatedAt,
	}
}

// GameLog is one append-only log entry for a game.
type GameLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;size:36;not null;index:idx_game_logs_user_created" json:"user_id"`
	GameID    int64     `gorm:"column:game_id;not null" json:"game_id"`
	GameSlug  string    `gorm:"column:game_slug;size:255;not null" json:"game_slug"`
	Rating    *int      `gorm:"column:rating" json:"rating"`
	Status    *string   `gorm:"column:status;size:16" json:"status"`
	Playing   bool      `gorm:"column:playing;not null;default:false" json:"playing"`
	Backlog   bool      `gorm:"column:backlog;not null;default:false" json:"backlog"`
	Wishlist  bool      `gorm:"column:wishlist;not null;default:false" json:"wishlist"`
	Liked     bool      `gorm:"column:liked;not null;default:false" json:"liked"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_game_logs_user_created" json:"created_at"`
}

// TableName pins the table name for gorm.
func (GameLog) TableName() string {
	return "game_logs"
}

// ToEvent projects the row onto the reconciler input.
func (g GameLog) ToEvent() reconcile.EventRecord {
	return reconcile.EventRecord{
		GameID:    g.GameID,
		Slug:      g.GameSlug,
		Flags:     reconcile.Flags{Playing: g.Playing, Backlog: g.Backlog, Wishlist: g.Wishlist, Liked: g.Liked},
		Status:    statusOf(g.Status),
		Rating:    g.Rating,
		CreatedAt: g.CreatedAt,
	}
}

// Models lists the tables owned by this feature, for migration and schema checks.
func Models() []any {
	return []any{&UserGame{}, &GameLog{}}
}

func statusOf(s *string) reconcile.Status {
	if s == nil {
		return reconcile.StatusNone
	}
	return reconcile.Status(*s)
}

func statusPtr(s reconcile.Status) *string {
	if s == reconcile.StatusNone {
		return nil
	}
	v := string(s)
	return &v
}
