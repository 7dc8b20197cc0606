package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tessera/descriptor"
)

func TestPrimitiveDescriptors(t *testing.T) {
	tests := []struct {
		d    *descriptor.Descriptor
		kind descriptor.Kind
		name string
	}{
		{Bool().Descriptor(), descriptor.Bool, "bool"},
		{String().Descriptor(), descriptor.String, "string"},
		{Bytes().Descriptor(), descriptor.Bytes, "bytes"},
		{Int8().Descriptor(), descriptor.Int8, "int8"},
		{Uint16().Descriptor(), descriptor.Uint16, "uint16"},
		{Float32().Descriptor(), descriptor.Float32, "float32"},
		{Float64().Descriptor(), descriptor.Float64, "float64"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.d.Kind())
			assert.Equal(t, tt.name, tt.d.Name())
			assert.Zero(t, tt.d.NumFields())
		})
	}
}

func TestPrimitiveEncode(t *testing.T) {
	rec, log := newRecorder()

	require.NoError(t, Bool().Encode(rec, true))
	require.NoError(t, Int16().Encode(rec, -7))
	require.NoError(t, Uint64().Encode(rec, math.MaxUint64))
	require.NoError(t, Float32().Encode(rec, 1.5))
	require.NoError(t, Bytes().Encode(rec, []byte{0xca, 0xfe}))

	assert.Equal(t, []string{
		"bool true",
		"int -7",
		"uint 18446744073709551615",
		"float 1.5",
		"bytes cafe",
	}, *log)
}

func TestPrimitiveDecode(t *testing.T) {
	b, err := Bool().Decode(leaf(true))
	require.NoError(t, err)
	assert.True(t, b)

	i, err := Int8().Decode(leaf(int64(-128)))
	require.NoError(t, err)
	assert.Equal(t, int8(-128), i)

	f, err := Float64().Decode(leaf(2.25))
	require.NoError(t, err)
	assert.Equal(t, 2.25, f)

	s, err := String().Decode(leaf("x"))
	require.NoError(t, err)
	assert.Equal(t, "x", s)
}

func TestPrimitiveOverflow(t *testing.T) {
	_, err := Uint8().Decode(leaf(uint64(256)))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Int8().Decode(leaf(int64(128)))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Int32().Decode(leaf(int64(math.MinInt32 - 1)))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Float32().Decode(leaf(math.MaxFloat64))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestPrimitiveWrongLeaf(t *testing.T) {
	_, err := Bool().Decode(leaf("true"))

	assert.ErrorIs(t, err, ErrMalformed)
}
