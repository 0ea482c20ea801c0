package geom

import "testing"

func TestRotateUnitOffsetNorthIsIdentity(t *testing.T) {
	cases := []Vec3U8{
		{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {3, 2, 1},
	}
	extent := Vec3U8{3, 2, 3}
	for _, o := range cases {
		if got := RotateUnitOffset(o, North, extent); got != o {
			t.Fatalf("RotateUnitOffset(%+v, North, %+v) = %+v, want %+v", o, extent, got, o)
		}
	}
}

func TestRotateUnitOffsetFourStepsReturnsToOrigin(t *testing.T) {
	// The round-trip property only holds when extent.X == extent.Z.
	extent := Vec3U8{X: 2, Y: 1, Z: 2}
	offsets := []Vec3U8{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {2, 0, 2}}

	for _, o := range offsets {
		cur := o
		for i := 0; i < 4; i++ {
			cur = RotateUnitOffset(cur, East, extent)
		}
		if cur != o {
			t.Fatalf("offset %+v did not return to origin after four East steps, got %+v", o, cur)
		}
	}
}

func TestDirectionAddNorthIsIdentity(t *testing.T) {
	for _, d := range Cardinals {
		if got := North.Add(d); got != d {
			t.Fatalf("North.Add(%v) = %v, want %v", d, got, d)
		}
		if got := d.Add(North); got != d {
			t.Fatalf("%v.Add(North) = %v, want %v", d, got, d)
		}
	}
}

func TestOppositeIsInvolution(t *testing.T) {
	for _, d := range Cardinals {
		if got := d.Opposite().Opposite(); got != d {
			t.Fatalf("%v.Opposite().Opposite() = %v, want %v", d, got, d)
		}
	}
}

func TestNeighbourPolarity(t *testing.T) {
	size := Vec3U8{X: 48, Y: 40, Z: 48}
	coord := Vec3U8{X: 20, Y: 20, Z: 20}

	cases := []struct {
		dir  Direction
		want Vec3U8
	}{
		{North, Vec3U8{X: 20, Y: 20, Z: 21}},
		{South, Vec3U8{X: 20, Y: 20, Z: 19}},
		{West, Vec3U8{X: 21, Y: 20, Z: 20}},
		{East, Vec3U8{X: 19, Y: 20, Z: 20}},
	}
	for _, c := range cases {
		got, ok := Neighbour(coord, c.dir, size)
		if !ok {
			t.Fatalf("Neighbour(%+v, %v) reported out of bounds unexpectedly", coord, c.dir)
		}
		if got != c.want {
			t.Fatalf("Neighbour(%+v, %v) = %+v, want %+v", coord, c.dir, got, c.want)
		}
	}
}

func TestNeighbourAtEdgeIsOutOfBounds(t *testing.T) {
	size := Vec3U8{X: 48, Y: 40, Z: 48}

	if _, ok := Neighbour(Vec3U8{X: 0, Y: 0, Z: 0}, South, size); ok {
		t.Fatal("expected South neighbour of z=0 to be out of bounds")
	}
	if _, ok := Neighbour(Vec3U8{X: 0, Y: 0, Z: 0}, East, size); ok {
		t.Fatal("expected East neighbour of x=0 to be out of bounds")
	}
	if _, ok := Neighbour(Vec3U8{X: 47, Y: 0, Z: 0}, West, size); ok {
		t.Fatal("expected West neighbour of x=size-1 to be out of bounds")
	}
	if _, ok := Neighbour(Vec3U8{X: 0, Y: 0, Z: 47}, North, size); ok {
		t.Fatal("expected North neighbour of z=size-1 to be out of bounds")
	}
}

func TestDirectionJSONRoundTrip(t *testing.T) {
	for _, d := range Cardinals {
		data, err := d.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal %v: %v", d, err)
		}
		var out Direction
		if err := out.UnmarshalJSON(data); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if out != d {
			t.Fatalf("round trip mismatch: got %v want %v", out, d)
		}
	}
}
