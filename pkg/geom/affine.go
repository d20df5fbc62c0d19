package geom

// Affine maps points axis by axis: x' = X*Sx + Tx, y' = Y*Sy + Ty.
// A negative Sy flips the vertical axis, which is how data space (y up)
// maps onto display space (y down).
type Affine struct {
	Sx, Tx float64
	Sy, Ty float64
}

// Identity is the affine map that leaves points unchanged.
var Identity = Affine{Sx: 1, Sy: 1}

// MapRange returns the affine map sending [a0, a1] to [b0, b1] on the x
// axis and [c0, c1] to [d0, d1] on the y axis.
func MapRange(a0, a1, b0, b1, c0, c1, d0, d1 float64) Affine {
	sx := (b1 - b0) / (a1 - a0)
	sy := (d1 - d0) / (c1 - c0)
	return Affine{
		Sx: sx, Tx: b0 - a0*sx,
		Sy: sy, Ty: d0 - c0*sy,
	}
}

// Apply maps p.
func (m Affine) Apply(p Point) Point {
	return Point{X: p.X*m.Sx + m.Tx, Y: p.Y*m.Sy + m.Ty}
}

// ApplyBox maps both corners of b and renormalizes the result.
func (m Affine) ApplyBox(b Box) Box {
	return NewBox(m.Apply(Point{b.X0, b.Y0}), m.Apply(Point{b.X1, b.Y1}))
}

// Inverse returns the map undoing m. m must not be degenerate.
func (m Affine) Inverse() Affine {
	return Affine{
		Sx: 1 / m.Sx, Tx: -m.Tx / m.Sx,
		Sy: 1 / m.Sy, Ty: -m.Ty / m.Sy,
	}
}

// Then returns the map applying m first and n second.
func (m Affine) Then(n Affine) Affine {
	return Affine{
		Sx: m.Sx * n.Sx, Tx: m.Tx*n.Sx + n.Tx,
		Sy: m.Sy * n.Sy, Ty: m.Ty*n.Sy + n.Ty,
	}
}
