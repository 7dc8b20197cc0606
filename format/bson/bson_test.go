package bson

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mgobson "gopkg.in/mgo.v2/bson"

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
}

func TestEncodeKeepsFieldOrder(t *testing.T) {
	out, err := format.Encode(New(), colorCodec, color{1, 2, 3})
	require.NoError(t, err)

	var doc struct {
		V mgobson.D `bson:"v"`
	}
	require.NoError(t, mgobson.Unmarshal(out, &doc))

	require.Len(t, doc.V, 3)
	assert.Equal(t, []string{"r", "g", "b"}, []string{doc.V[0].Name, doc.V[1].Name, doc.V[2].Name})
}

func TestDecodeAnyOrder(t *testing.T) {
	in, err := mgobson.Marshal(mgobson.D{{Name: "v", Value: mgobson.D{
		{Name: "b", Value: 3},
		{Name: "r", Value: int64(1)},
		{Name: "g", Value: 2.0},
	}}})
	require.NoError(t, err)

	got, err := format.Decode(New(), colorCodec, in)

	require.NoError(t, err)
	assert.Equal(t, color{1, 2, 3}, got)
}

func TestDecodeRequiresRootKey(t *testing.T) {
	in, err := mgobson.Marshal(mgobson.M{"x": 1})
	require.NoError(t, err)

	_, err = format.Decode(New(), colorCodec, in)

	assert.ErrorIs(t, err, codec.ErrMalformed)
}

func TestBytes(t *testing.T) {
	out, err := format.Encode(New(), codec.Bytes(), []byte{0xca, 0xfe})
	require.NoError(t, err)

	got, err := format.Decode(New(), codec.Bytes(), out)

	require.NoError(t, err)
	assert.Equal(t, []byte{0xca, 0xfe}, got)
}

func TestUnsignedLimits(t *testing.T) {
	out, err := format.Encode(New(), codec.Uint64(), uint64(math.MaxInt64))
	require.NoError(t, err)
	got, err := format.Decode(New(), codec.Uint64(), out)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxInt64), got)

	_, err = format.Encode(New(), codec.Uint64(), uint64(math.MaxInt64)+1)
	assert.Error(t, err)
}
