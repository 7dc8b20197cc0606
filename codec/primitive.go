package codec

import (
	"math"
	"strconv"

	"tessera/descriptor"
)

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

var (
	boolCodec    = primitive[bool]{d: descriptor.Primitive(descriptor.Bool, "bool")}
	stringCodec  = primitive[string]{d: descriptor.Primitive(descriptor.String, "string")}
	bytesCodec   = primitive[[]byte]{d: descriptor.Primitive(descriptor.Bytes, "bytes")}
	float32Codec = floatCodec[float32]{d: descriptor.Primitive(descriptor.Float32, "float32")}
	float64Codec = floatCodec[float64]{d: descriptor.Primitive(descriptor.Float64, "float64")}

	intCodec   = signedCodec[int]{d: descriptor.Primitive(nativeKind(descriptor.Int32, descriptor.Int64), "int")}
	int8Codec  = signedCodec[int8]{d: descriptor.Primitive(descriptor.Int8, "int8")}
	int16Codec = signedCodec[int16]{d: descriptor.Primitive(descriptor.Int16, "int16")}
	int32Codec = signedCodec[int32]{d: descriptor.Primitive(descriptor.Int32, "int32")}
	int64Codec = signedCodec[int64]{d: descriptor.Primitive(descriptor.Int64, "int64")}

	uintCodec   = unsignedCodec[uint]{d: descriptor.Primitive(nativeKind(descriptor.Uint32, descriptor.Uint64), "uint")}
	uint8Codec  = unsignedCodec[uint8]{d: descriptor.Primitive(descriptor.Uint8, "uint8")}
	uint16Codec = unsignedCodec[uint16]{d: descriptor.Primitive(descriptor.Uint16, "uint16")}
	uint32Codec = unsignedCodec[uint32]{d: descriptor.Primitive(descriptor.Uint32, "uint32")}
	uint64Codec = unsignedCodec[uint64]{d: descriptor.Primitive(descriptor.Uint64, "uint64")}
)

func nativeKind(k32, k64 descriptor.Kind) descriptor.Kind {
	if strconv.IntSize == 32 {
		return k32
	}
	return k64
}

func Bool() Codec[bool]       { return boolCodec }
func String() Codec[string]   { return stringCodec }
func Bytes() Codec[[]byte]    { return bytesCodec }
func Float32() Codec[float32] { return float32Codec }
func Float64() Codec[float64] { return float64Codec }
func Int() Codec[int]         { return intCodec }
func Int8() Codec[int8]       { return int8Codec }
func Int16() Codec[int16]     { return int16Codec }
func Int32() Codec[int32]     { return int32Codec }
func Int64() Codec[int64]     { return int64Codec }
func Uint() Codec[uint]       { return uintCodec }
func Uint8() Codec[uint8]     { return uint8Codec }
func Uint16() Codec[uint16]   { return uint16Codec }
func Uint32() Codec[uint32]   { return uint32Codec }
func Uint64() Codec[uint64]   { return uint64Codec }

// primitive covers the kinds whose sink and source methods already speak the
// Go type.
type primitive[T bool | string | []byte] struct {
	d *descriptor.Descriptor
}

func (c primitive[T]) Descriptor() *descriptor.Descriptor { return c.d }

func (c primitive[T]) Encode(e Encoder, value T) error {
	switch v := any(value).(type) {
	case bool:
		return e.EncodeBool(v)
	case string:
		return e.EncodeString(v)
	default:
		return e.EncodeBytes(any(value).([]byte))
	}
}

func (c primitive[T]) Decode(d Decoder) (T, error) {
	var (
		v   any
		err error
	)
	switch c.d.Kind() {
	case descriptor.Bool:
		v, err = d.DecodeBool()
	case descriptor.String:
		v, err = d.DecodeString()
	default:
		v, err = d.DecodeBytes()
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

type signedCodec[I signed] struct {
	d *descriptor.Descriptor
}

func (c signedCodec[I]) Descriptor() *descriptor.Descriptor { return c.d }

func (c signedCodec[I]) Encode(e Encoder, value I) error {
	return e.EncodeInt(int64(value))
}

func (c signedCodec[I]) Decode(d Decoder) (I, error) {
	v, err := d.DecodeInt()
	if err != nil {
		return 0, err
	}
	if int64(I(v)) != v {
		return 0, Malformed("%d overflows %s", v, c.d.Name())
	}
	return I(v), nil
}

type unsignedCodec[U unsigned] struct {
	d *descriptor.Descriptor
}

func (c unsignedCodec[U]) Descriptor() *descriptor.Descriptor { return c.d }

func (c unsignedCodec[U]) Encode(e Encoder, value U) error {
	return e.EncodeUint(uint64(value))
}

func (c unsignedCodec[U]) Decode(d Decoder) (U, error) {
	v, err := d.DecodeUint()
	if err != nil {
		return 0, err
	}
	if uint64(U(v)) != v {
		return 0, Malformed("%d overflows %s", v, c.d.Name())
	}
	return U(v), nil
}

type floatCodec[F float32 | float64] struct {
	d *descriptor.Descriptor
}

func (c floatCodec[F]) Descriptor() *descriptor.Descriptor { return c.d }

func (c floatCodec[F]) Encode(e Encoder, value F) error {
	return e.EncodeFloat(float64(value))
}

func (c floatCodec[F]) Decode(d Decoder) (F, error) {
	v, err := d.DecodeFloat()
	if err != nil {
		return 0, err
	}
	if !math.IsInf(v, 0) && math.IsInf(float64(F(v)), 0) {
		return 0, Malformed("%g overflows %s", v, c.d.Name())
	}
	return F(v), nil
}
