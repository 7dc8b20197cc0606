package main

import (
	"strconv"
	"strings"

	"github.com/samber/mo"

	"tessera"
	"tessera/codec"
)

type color struct {
	red, green, blue uint8
}

var (
	red   = codec.NewField("r", codec.Uint8(), func(c color) uint8 { return c.red })
	green = codec.NewField("g", codec.Uint8(), func(c color) uint8 { return c.green })
	blue  = codec.NewField("b", codec.Uint8(), func(c color) uint8 { return c.blue })
)

var colorCodec = codec.MustComposite[color]("color",
	func(v codec.Values) (color, error) {
		return color{red.From(v), green.From(v), blue.From(v)}, nil
	},
	red, green, blue,
)

// argbCodec packs a color into a single integer field.
var argbCodec = codec.MustComposite[color]("color-argb",
	func(v codec.Values) (color, error) {
		n := codec.Value[int](v, 0)
		return color{uint8(n >> 16), uint8(n >> 8), uint8(n)}, nil
	},
	codec.NewField("argb", codec.Int(), func(c color) int {
		return int(c.red)<<16 ^ int(c.green)<<8 ^ int(c.blue)
	}),
)

type point[N any] struct {
	x, y N
}

func pointCodec[N any](name string, coord codec.Codec[N]) *codec.CompositeCodec[point[N]] {
	return codec.MustComposite[point[N]](name,
		func(v codec.Values) (point[N], error) {
			return point[N]{codec.Value[N](v, 0), codec.Value[N](v, 1)}, nil
		},
		codec.NewField("x", coord, func(p point[N]) N { return p.x }),
		codec.NewField("y", coord, func(p point[N]) N { return p.y }),
	)
}

type empty struct{}

var emptyCodec = codec.MustComposite[empty]("empty",
	func(codec.Values) (empty, error) { return empty{}, nil },
)

// negatedCodec writes an int behind a minus sign in decimal text, e.g. 3 as
// "-3". Restore cannot fail, so text that is not a minus sign followed by a
// decimal integer reads as 0.
var negatedCodec = codec.Delegate(codec.String(),
	func(n int) string { return "-" + strconv.Itoa(n) },
	func(s string) int {
		digits, ok := strings.CutPrefix(s, "-")
		if !ok {
			return 0
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return 0
		}
		return n
	},
	mo.Some("negated"),
)

// countCodec writes an int as a one-element list, e.g. 3 as [3].
var countCodec = codec.Delegate[int, []int](codec.List(codec.Int()),
	func(n int) []int { return []int{n} },
	func(l []int) int {
		if len(l) == 0 {
			return 0
		}
		return l[0]
	},
	mo.Some("count"),
)

// boxCodec writes the two corners of a box as a list of points.
var boxCodec = codec.Delegate[[2]point[int], []point[int]](
	codec.List[point[int]](pointCodec("point", codec.Int())),
	func(corners [2]point[int]) []point[int] { return corners[:] },
	func(ps []point[int]) (corners [2]point[int]) {
		copy(corners[:], ps)
		return corners
	},
	mo.Some("box"),
)

func registerTypes(c *tessera.Catalog) error {
	for _, err := range []error{
		tessera.Use[color](c, colorCodec),
		tessera.Use[color](c, argbCodec),
		tessera.Use[point[int]](c, pointCodec("point", codec.Int())),
		tessera.Use[point[float64]](c, pointCodec("fpoint", codec.Float64())),
		tessera.Use[empty](c, emptyCodec),
		tessera.Use[int](c, negatedCodec),
		tessera.Use[int](c, countCodec),
		tessera.Use[[2]point[int]](c, boxCodec),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}
