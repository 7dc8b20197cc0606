package codec_test

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tessera/codec"
	"tessera/descriptor"
	"tessera/format"
	"tessera/format/json"
)

type pair struct {
	left, right int
}

var pairCodec = codec.MustComposite[pair]("Pair",
	func(v codec.Values) (pair, error) {
		return pair{codec.Value[int](v, 0), codec.Value[int](v, 1)}, nil
	},
	codec.NewField("left", codec.Int(), func(p pair) int { return p.left }),
	codec.NewField("right", codec.Int(), func(p pair) int { return p.right }),
)

type wrapper[T any] struct {
	x T
}

func wrapperCodec[T any](inner codec.Codec[T], name mo.Option[string]) *codec.DelegateCodec[wrapper[T], T] {
	return codec.Delegate(inner,
		func(w wrapper[T]) T { return w.x },
		func(x T) wrapper[T] { return wrapper[T]{x} },
		name,
	)
}

func TestUnnamedDelegateEncodesLikeInner(t *testing.T) {
	// arrange
	in := pair{3, -4}
	delegate := wrapperCodec[pair](pairCodec, mo.None[string]())

	// act
	want, err := format.Encode(json.New(), codec.Codec[pair](pairCodec), in)
	require.NoError(t, err)
	got, err := format.Encode(json.New(), codec.Codec[wrapper[pair]](delegate), wrapper[pair]{in})
	require.NoError(t, err)

	// assert
	assert.Equal(t, `{"left":3,"right":-4}`, string(want))
	assert.Equal(t, string(want), string(got))
	assert.Same(t, pairCodec.Descriptor(), delegate.Descriptor())
}

func TestRenamedPrimitiveDelegateEncodesLikeInner(t *testing.T) {
	// arrange
	c := wrapperCodec(codec.Int(), mo.Some("Wrapper"))

	// act
	out, err := format.Encode(json.New(), codec.Codec[wrapper[int]](c), wrapper[int]{3})
	require.NoError(t, err)
	back, err := format.Decode(json.New(), codec.Codec[wrapper[int]](c), []byte("3"))
	require.NoError(t, err)

	// assert
	assert.Equal(t, "3", string(out))
	assert.Equal(t, wrapper[int]{3}, back)
	assert.Equal(t, "Wrapper", c.Descriptor().Name())
	assert.Equal(t, codec.Int().Descriptor().Kind(), c.Descriptor().Kind())
}

func TestRenamedCompositeDelegateEncodesLikeInner(t *testing.T) {
	c := wrapperCodec[pair](pairCodec, mo.Some("Wrapped"))

	out, err := format.Encode(json.New(), codec.Codec[wrapper[pair]](c), wrapper[pair]{pair{1, 2}})

	require.NoError(t, err)
	assert.Equal(t, `{"left":1,"right":2}`, string(out))
	assert.True(t, descriptor.Equal(pairCodec.Descriptor(), c.Descriptor()))
}
