package msgpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tessera/codec"
	"tessera/format"
)

type color struct {
	r, g, b uint8
}

var (
	red   = codec.NewField("r", codec.Uint8(), func(c color) uint8 { return c.r })
	green = codec.NewField("g", codec.Uint8(), func(c color) uint8 { return c.g })
	blue  = codec.NewField("b", codec.Uint8(), func(c color) uint8 { return c.b })

	colorCodec codec.Codec[color] = codec.MustComposite[color]("Color",
		func(v codec.Values) (color, error) { return color{red.From(v), green.From(v), blue.From(v)}, nil },
		red, green, blue,
	)
)

func TestRoundTripColor(t *testing.T) {
	// arrange
	in := color{245, 250, 254}

	// act
	out, err := format.Encode(New(), colorCodec, in)
	require.NoError(t, err)
	got, err := format.Decode(New(), colorCodec, out)

	// assert
	require.NoError(t, err)
	assert.Equal(t, in, got)
	assert.Equal(t, byte(0x93), out[0], "composites are fixed arrays")
}

func TestStringsAndBytesStayDistinct(t *testing.T) {
	s, err := format.Encode(New(), codec.String(), "hi")
	require.NoError(t, err)
	b, err := format.Encode(New(), codec.Bytes(), []byte("hi"))
	require.NoError(t, err)

	assert.NotEqual(t, s, b)
	gotS, err := format.Decode(New(), codec.String(), s)
	require.NoError(t, err)
	assert.Equal(t, "hi", gotS)
	gotB, err := format.Decode(New(), codec.Bytes(), b)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), gotB)
}

func TestDecodeWrongArity(t *testing.T) {
	// [1, 2]
	_, err := format.Decode(New(), colorCodec, []byte{0x92, 0x01, 0x02})

	assert.ErrorIs(t, err, codec.ErrMalformed)
}

func TestDecodeTruncated(t *testing.T) {
	_, err := format.Decode(New(), colorCodec, []byte{0x93, 0x01})

	assert.ErrorIs(t, err, codec.ErrMalformed)
}

func TestNegativeAndFloat(t *testing.T) {
	i, err := format.Encode(New(), codec.Int32(), -70000)
	require.NoError(t, err)
	gotI, err := format.Decode(New(), codec.Int32(), i)
	require.NoError(t, err)
	assert.Equal(t, int32(-70000), gotI)

	f, err := format.Encode(New(), codec.Float64(), 0.25)
	require.NoError(t, err)
	gotF, err := format.Decode(New(), codec.Float64(), f)
	require.NoError(t, err)
	assert.Equal(t, 0.25, gotF)
}

type blob struct {
	id   uint8
	data []byte
}

var blobCodec codec.Codec[blob] = codec.MustComposite[blob]("Blob",
	func(v codec.Values) (blob, error) {
		return blob{codec.Value[uint8](v, 0), codec.Value[[]byte](v, 1)}, nil
	},
	codec.NewField("id", codec.Uint8(), func(b blob) uint8 { return b.id }),
	codec.NewField("data", codec.Bytes(), func(b blob) []byte { return b.data }),
)

func TestBytesFieldRoundTrip(t *testing.T) {
	// "abcd" is also valid base64 text, so bytes read back as a string
	// would decode to different bytes instead of failing.
	for _, data := range [][]byte{[]byte("abcd"), {0xff, 0x00, 0x7f}} {
		// arrange
		in := blob{7, data}

		// act
		out, err := format.Encode(New(), blobCodec, in)
		require.NoError(t, err)
		got, err := format.Decode(New(), blobCodec, out)

		// assert
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}
