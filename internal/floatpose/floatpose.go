// Package floatpose implements a bit-comparable float wrapper used by poses
// (FreeBlock and Item positions/rotations) so they can serve as multiset
// keys: NaN is rejected at construction, and -0.0 is kept distinct from
// +0.0, matching the bit-canonicalised comparison the original server
// relies on for hashing.
package floatpose

import (
	"encoding/json"
	"errors"
	"math"
)

// ErrNaN is returned by New when given a NaN value.
var ErrNaN = errors.New("floatpose: NaN is not a valid pose component")

// Float32 is a float32 that compares and hashes by its raw bit pattern: two
// Float32 values are equal iff their bits are identical, so -0.0 and +0.0
// are distinct but any given bit pattern is reflexively equal to itself.
type Float32 struct {
	bits uint32
}

// New constructs a Float32, rejecting NaN.
func New(v float32) (Float32, error) {
	if math.IsNaN(float64(v)) {
		return Float32{}, ErrNaN
	}
	return Float32{bits: math.Float32bits(v)}, nil
}

// MustNew is New, panicking on NaN. Intended for tests and literals where
// the value is known not to be NaN.
func MustNew(v float32) Float32 {
	f, err := New(v)
	if err != nil {
		panic(err)
	}
	return f
}

// Value returns the underlying float32.
func (f Float32) Value() float32 {
	return math.Float32frombits(f.bits)
}

// MarshalJSON encodes the wrapped value as a plain JSON number.
func (f Float32) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value())
}

// UnmarshalJSON decodes a JSON number, rejecting NaN (which json.Unmarshal
// itself cannot produce, but guards the invariant for any future codec).
func (f *Float32) UnmarshalJSON(data []byte) error {
	var v float32
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := New(v)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Vec3 is a 3-tuple of pose-safe floats, used for positions and pivots.
type Vec3 struct {
	X, Y, Z Float32
}

// NewVec3 constructs a Vec3 from plain float32 components, rejecting NaN in
// any component.
func NewVec3(x, y, z float32) (Vec3, error) {
	vx, err := New(x)
	if err != nil {
		return Vec3{}, err
	}
	vy, err := New(y)
	if err != nil {
		return Vec3{}, err
	}
	vz, err := New(z)
	if err != nil {
		return Vec3{}, err
	}
	return Vec3{X: vx, Y: vy, Z: vz}, nil
}
