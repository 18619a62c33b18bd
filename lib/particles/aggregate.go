package particles

/* aggregate.go flattens a particle container into contiguous host-side
buffers for the point-cloud exporter. */

import (
	"gonum.org/v1/gonum/floats"
)

// Cloud holds nine parallel sequences of equal length, one entry per particle:
// the three position components and the six attribute slots. Row i of every
// sequence describes the same particle.
type Cloud struct {
	X, Y, Z    []float64
	Vx, Vy, Vz []float64
	Ax, Ay, Az []float64
}

// Len returns the number of particles in the cloud.
func (cl *Cloud) Len() int { return len(cl.X) }

// Bounds returns the minimum and maximum position along each axis. It panics
// on an empty cloud, since an empty cloud has no bounds.
func (cl *Cloud) Bounds() (lo, hi [3]float64) {
	lo[0], hi[0] = floats.Min(cl.X), floats.Max(cl.X)
	lo[1], hi[1] = floats.Min(cl.Y), floats.Max(cl.Y)
	lo[2], hi[2] = floats.Min(cl.Z), floats.Max(cl.Z)
	return lo, hi
}

// Attr returns the sequence backing one attribute slot.
func (cl *Cloud) Attr(comp int) []float64 {
	switch comp {
	case Vx:
		return cl.Vx
	case Vy:
		return cl.Vy
	case Vz:
		return cl.Vz
	case Ax:
		return cl.Ax
	case Ay:
		return cl.Ay
	case Az:
		return cl.Az
	}
	panic("'Impossible' attribute index.")
}

// Aggregate flattens every particle the calling processing unit owns into a
// Cloud. Rows are ordered by (level ascending, tile storage order, in-tile
// order): whatever order the container yields is the order of the cloud, so
// the total row count always equals the sum of the per-tile counts. A
// population with no particles yields a zero-length cloud.
func Aggregate(c Container) *Cloud {
	n := TotalCount(c)

	cl := &Cloud{
		make([]float64, 0, n), make([]float64, 0, n), make([]float64, 0, n),
		make([]float64, 0, n), make([]float64, 0, n), make([]float64, 0, n),
		make([]float64, 0, n), make([]float64, 0, n), make([]float64, 0, n),
	}

	for lev := 0; lev <= c.FinestLevel(); lev++ {
		for _, tile := range c.Tiles(lev) {
			for i := 0; i < tile.Len(); i++ {
				pos := tile.Pos(i)
				cl.X = append(cl.X, pos[0])
				cl.Y = append(cl.Y, pos[1])
				cl.Z = append(cl.Z, pos[2])

				cl.Vx = append(cl.Vx, tile.Attr(i, Vx))
				cl.Vy = append(cl.Vy, tile.Attr(i, Vy))
				cl.Vz = append(cl.Vz, tile.Attr(i, Vz))

				cl.Ax = append(cl.Ax, tile.Attr(i, Ax))
				cl.Ay = append(cl.Ay, tile.Attr(i, Ay))
				cl.Az = append(cl.Az, tile.Attr(i, Az))
			}
		}
	}

	return cl
}
