// Package noise provides seeded 2-D simplex noise.
package noise

import (
	"math"
	"math/rand"
)

// Skew and unskew factors for two dimensions.
var (
	f2 = 0.5 * (math.Sqrt(3.0) - 1.0)
	g2 = (3.0 - math.Sqrt(3.0)) / 6.0
)

// scale normalizes the summed corner contributions to roughly [-1, 1].
const scale = 70.0

// grad3 holds the 12 gradient directions (edge midpoints of a cube, projected onto x/y).
var grad3 = [12][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {1, 0}, {-1, 0},
	{0, 1}, {0, -1}, {0, 1}, {0, -1},
}

// Field is a seeded simplex noise evaluator. It holds no mutable state after
// construction, so a single Field may be sampled from independent passes freely.
type Field struct {
	seed int64
	perm [512]int
}

// New creates a noise field whose permutation table is shuffled by the given seed.
func New(seed int64) *Field {
	f := &Field{seed: seed}

	var p [256]int
	for i := range p {
		p[i] = i
	}

	// In-place Fisher-Yates shuffle driven by a private stream.
	rng := rand.New(rand.NewSource(seed))
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}

	// Duplicate so lookups of perm[i+perm[j]] never need wrapping.
	for i := range f.perm {
		f.perm[i] = p[i&255]
	}

	return f
}

// Seed returns the seed the field was built from.
func (f *Field) Seed() int64 {
	return f.seed
}

// Eval returns the noise value at (x, y), in [-1, 1].
func (f *Field) Eval(x, y float64) float64 {
	// Skew the input space to find the containing simplex cell.
	s := (x + y) * f2
	i := int(math.Floor(x + s))
	j := int(math.Floor(y + s))

	t := float64(i+j) * g2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	// Upper or lower triangle of the cell.
	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := i & 255
	jj := j & 255
	gi0 := f.perm[ii+f.perm[jj]] % 12
	gi1 := f.perm[ii+i1+f.perm[jj+j1]] % 12
	gi2 := f.perm[ii+1+f.perm[jj+1]] % 12

	n := corner(gi0, x0, y0) + corner(gi1, x1, y1) + corner(gi2, x2, y2)

	return clamp(scale * n)
}

// Normalized returns the noise value at (x, y) remapped to [0, 1].
func (f *Field) Normalized(x, y float64) float64 {
	return (f.Eval(x, y) + 1.0) / 2.0
}

// corner computes one simplex corner's attenuated gradient contribution.
func corner(gi int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	t *= t
	g := grad3[gi]
	return t * t * (g[0]*x + g[1]*y)
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
