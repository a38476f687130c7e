package geometry

// Surface maps a point of the 2D parameter domain to ambient 3D space.
// Implementations must be total: on evaluation failure they return the
// Invalid() sentinel rather than panicking.
type Surface interface {
	At(u, v float64) Vec3
}

// Func adapts a plain function to the Surface interface.
type Func func(u, v float64) Vec3

func (f Func) At(u, v float64) Vec3 { return f(u, v) }
