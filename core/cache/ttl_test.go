package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLFor(t *testing.T) {
	def := 10 * time.Minute
	tests := []struct {
		key  string
		want time.Duration
	}{
		{"igdb_game_zelda", 24 * time.Hour},
		{"steam_user_1", 10 * time.Minute},
		{"xbox_profile", 10 * time.Minute},
		{"twitch_stream", 5 * time.Minute},
		{"discord_presence", time.Minute},
		{"igdb", 24 * time.Hour},
		{"other_key", def},
		{"", def},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, TTLFor(tt.key, def))
		})
	}
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, "igdb", Namespace("igdb_game_a_b"))
	assert.Equal(t, "plain", Namespace("plain"))
	assert.Equal(t, "", Namespace("_x"))
}
