/*package comm abstracts the processing-unit layout the export code runs
under. The export pipelines themselves are local: each unit writes the data it
owns. Producing one global point-cloud file from many units needs an explicit
gather before the exporter runs, and that gather lives here as its own
composable step rather than inside the exporter.

Serial is the only implementation in this repository. A multi-unit deployment
supplies its own Comm backed by its message-passing layer; the gather
functions only rely on the interface.
*/
package comm

import (
	"github.com/pmclab/mdexport/lib/particles"
)

// Comm describes the collective surface the export code can use. Gathers are
// rank-major: the root receives every unit's contribution concatenated in
// rank order. Units other than root receive nil.
type Comm interface {
	// Rank returns the calling unit's rank, in [0, Size).
	Rank() int
	// Size returns the number of processing units.
	Size() int
	// GatherFloat64s gathers each unit's slice onto root.
	GatherFloat64s(x []float64, root int) ([]float64, error)
	// GatherInts gathers each unit's slice onto root.
	GatherInts(x []int, root int) ([]int, error)
}

// Serial is the single-unit Comm: rank 0 of 1, and every gather is a copy.
type Serial struct{}

// Type assertion
var _ Comm = Serial{}

func (Serial) Rank() int { return 0 }
func (Serial) Size() int { return 1 }

func (Serial) GatherFloat64s(x []float64, root int) ([]float64, error) {
	out := make([]float64, len(x))
	copy(out, x)
	return out, nil
}

func (Serial) GatherInts(x []int, root int) ([]int, error) {
	out := make([]int, len(x))
	copy(out, x)
	return out, nil
}

// GatherCloud gathers every unit's cloud onto root, preserving rank order:
// the global cloud lists all of rank 0's rows, then rank 1's, and so on,
// each in that unit's local aggregation order. Units other than root get nil.
func GatherCloud(c Comm, cl *particles.Cloud, root int) (*particles.Cloud, error) {
	seqs := [9]*[]float64{
		&cl.X, &cl.Y, &cl.Z,
		&cl.Vx, &cl.Vy, &cl.Vz,
		&cl.Ax, &cl.Ay, &cl.Az,
	}

	out := &particles.Cloud{}
	outSeqs := [9]*[]float64{
		&out.X, &out.Y, &out.Z,
		&out.Vx, &out.Vy, &out.Vz,
		&out.Ax, &out.Ay, &out.Az,
	}

	for i := range seqs {
		g, err := c.GatherFloat64s(*seqs[i], root)
		if err != nil {
			return nil, err
		}
		*outSeqs[i] = g
	}

	if c.Rank() != root {
		return nil, nil
	}
	return out, nil
}
