package shortid

// Config holds configuration for decoding public identifiers.
type Config struct {
	// Lenient passes undecodable input through unchanged instead of rejecting it.
	Lenient bool `mapstructure:"lenient" default:"true"`
}

// Mode returns the decode mode selected by the configuration.
func (c Config) Mode() Mode {
	if c.Lenient {
		return Lenient
	}
	return Strict
}
