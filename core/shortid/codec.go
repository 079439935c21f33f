package shortid

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Alphabet is the base-62 digit set, in digit order.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// ErrInvalidShortID is returned by a Strict codec for input that is neither canonical nor valid base-62.
var ErrInvalidShortID = errors.New("invalid short id")

// Mode selects how Decode treats input it cannot decode.
type Mode int

const (
	// Strict rejects undecodable input with ErrInvalidShortID.
	Strict Mode = iota
	// Lenient returns undecodable input unchanged. Legacy ids that are neither UUIDs nor
	// short ids keep working, at the cost of reaching store queries unvalidated.
	Lenient
)

func (m Mode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}

var (
	base     = big.NewInt(62)
	maxValue = new(big.Int).Lsh(big.NewInt(1), 128)
	digits   [256]int8
)

func init() {
	for i := range digits {
		digits[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		digits[Alphabet[i]] = int8(i)
	}
}

// Codec translates between canonical UUID strings and short ids.
type Codec struct {
	mode Mode
}

// New creates a codec decoding in mode.
func New(mode Mode) *Codec {
	return &Codec{mode: mode}
}

// Mode returns the decode mode.
func (c *Codec) Mode() Mode {
	return c.mode
}

// Encode renders id as base-62, most significant digit first. The nil UUID encodes to "0".
func Encode(id uuid.UUID) string {
	n := new(big.Int).SetBytes(id[:])
	if n.Sign() == 0 {
		return Alphabet[:1]
	}

	var out []byte
	mod := new(big.Int)
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		out = append(out, Alphabet[mod.Int64()])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// EncodeString encodes a canonical UUID string.
func EncodeString(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidShortID, err)
	}
	return Encode(id), nil
}

// Encode is the package Encode, present so a Codec can stand in for both directions.
func (c *Codec) Encode(id uuid.UUID) string {
	return Encode(id)
}

// Decode returns the canonical UUID for input. Input already in canonical hyphenated form is
// returned unchanged, case included.
func (c *Codec) Decode(input string) (string, error) {
	if IsCanonical(input) {
		return input, nil
	}

	n, ok := parse(input)
	if !ok {
		if c.mode == Lenient {
			return input, nil
		}
		return "", ErrInvalidShortID
	}

	hex := fmt.Sprintf("%032x", n)
	return hex[0:8] + "-" + hex[8:12] + "-" + hex[12:16] + "-" + hex[16:20] + "-" + hex[20:32], nil
}

// IsCanonical reports whether s has the 36-character hyphenated UUID shape.
// Only length and hyphen positions are checked.
func IsCanonical(s string) bool {
	if len(s) != 36 {
		return false
	}
	return s[8] == '-' && s[13] == '-' && s[18] == '-' && s[23] == '-' && strings.Count(s, "-") == 4
}

func parse(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}

	n := new(big.Int)
	d := new(big.Int)
	for i := 0; i < len(s); i++ {
		v := digits[s[i]]
		if v < 0 {
			return nil, false
		}
		n.Mul(n, base)
		n.Add(n, d.SetInt64(int64(v)))
	}

	if n.Cmp(maxValue) >= 0 {
		return nil, false
	}
	return n, true
}
