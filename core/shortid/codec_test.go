package shortid

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	codec := New(Strict)
	for i := 0; i < 1000; i++ {
		id := uuid.New()
		short := Encode(id)

		assert.LessOrEqual(t, len(short), 22)
		decoded, err := codec.Decode(short)
		require.NoError(t, err)
		require.Equal(t, id.String(), decoded)
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "0", Encode(uuid.Nil))
	assert.Equal(t, "1", Encode(uuid.MustParse("00000000-0000-0000-0000-000000000001")))
	assert.Equal(t, "10", Encode(uuid.MustParse("00000000-0000-0000-0000-00000000003e")))
	assert.Equal(t, "7n42DGM5Tflk9n8mt7Fhc7", Encode(uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")))
}

func TestEncodeString(t *testing.T) {
	short, err := EncodeString("00000000-0000-0000-0000-00000000003d")
	require.NoError(t, err)
	assert.Equal(t, "z", short)

	_, err = EncodeString("not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidShortID)
}

func TestDecode_Canonical(t *testing.T) {
	codec := New(Strict)

	// Canonical input is returned as-is, case preserved.
	upper := "ABCDEF01-2345-6789-ABCD-EF0123456789"
	got, err := codec.Decode(upper)
	require.NoError(t, err)
	assert.Equal(t, upper, got)

	// The alphabet is not consulted for canonical shapes.
	odd := "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz"
	got, err = codec.Decode(odd)
	require.NoError(t, err)
	assert.Equal(t, odd, got)
}

func TestDecode_Padding(t *testing.T) {
	got, err := New(Strict).Decode("0")
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", got)

	got, err = New(Strict).Decode("10")
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0000-00000000003e", got)
}

func TestDecode_Invalid(t *testing.T) {
	overflow := "7n42DGM5Tflk9n8mt7Fhc8"
	inputs := []string{"", "abc-def", "short!", "with space", overflow, strings.Repeat("z", 30)}

	strict := New(Strict)
	lenient := New(Lenient)

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := strict.Decode(in)
			assert.ErrorIs(t, err, ErrInvalidShortID)

			got, err := lenient.Decode(in)
			assert.NoError(t, err)
			assert.Equal(t, in, got)
		})
	}
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical(uuid.NewString()))
	assert.False(t, IsCanonical(strings.Repeat("a", 36)))
	assert.False(t, IsCanonical("0000000000000000000000000000000000-0"))
	assert.False(t, IsCanonical("00000000-0000-0000-0000-00000000000"))
}

func TestConfigMode(t *testing.T) {
	assert.Equal(t, Lenient, Config{Lenient: true}.Mode())
	assert.Equal(t, Strict, Config{}.Mode())
	assert.Equal(t, "lenient", Lenient.String())
	assert.Equal(t, "strict", Strict.String())
}
