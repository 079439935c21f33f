package catalog

// Config holds configuration for the upstream game catalog (IGDB).
type Config struct {
	ClientID     string `mapstructure:"client_id" default:""`
	ClientSecret string `mapstructure:"client_secret" default:""`
	// BaseURL is the IGDB API root; resources are posted to BaseURL/<resource>.
	BaseURL string `mapstructure:"base_url" default:"https://api.igdb.com/v4"`
	// TokenURL issues client-credentials tokens for ClientID.
	TokenURL       string `mapstructure:"token_url" default:"https://id.twitch.tv/oauth2/token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"15"`
	// RequestsPerSecond and Burst shape outgoing traffic; IGDB allows 4 requests per second.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"4"`
	Burst             int     `mapstructure:"burst" default:"4"`
	// ChunkSize is the number of slugs per upstream request.
	ChunkSize int `mapstructure:"chunk_size" default:"50"`
	// MaxBatchSize bounds the number of slugs a single resolve call accepts.
	MaxBatchSize int `mapstructure:"max_batch_size" default:"500"`
	// PartialResults returns resolved games alongside failed chunks instead of failing the batch.
	PartialResults bool `mapstructure:"partial_results" default:"false"`
	// BackfillTimeoutSeconds bounds each background cache write.
	BackfillTimeoutSeconds int `mapstructure:"backfill_timeout_seconds" default:"10"`
}
