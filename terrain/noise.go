package terrain

import "math"

const (
	MaxOctaves = 8

	// octave offsets are drawn from [-octaveSpread, octaveSpread]
	octaveSpread = 100_000
)

// Sampler evaluates octave value noise for one seed and parameter set.
// Samples are a pure function of world position, so neighbouring chunks
// generated independently meet without seams.
type Sampler struct {
	seed         uint32
	params       Params
	offsets      [][2]float64
	maxAmplitude float64
}

// NewSampler derives the per octave offsets for seed. p is validated first.
func NewSampler(seed uint32, p Params) *Sampler {
	p.Validate()
	s := &Sampler{seed: seed, params: p}

	amplitude := 1.0
	for i := uint32(0); i < p.Octaves; i++ {
		s.offsets = append(s.offsets, [2]float64{
			spread(hash3(seed, int32(i), 0, 1)) + float64(p.OffsetX),
			spread(hash3(seed, int32(i), 0, 2)) + float64(p.OffsetY),
		})
		s.maxAmplitude += amplitude
		amplitude *= float64(p.Persistence)
	}
	return s
}

// Height returns the noise at (x, y) normalized to [0, 1].
func (s *Sampler) Height(x, y float32) float32 {
	var (
		amplitude = 1.0
		frequency = 1.0
		sum       float64
	)
	for _, off := range s.offsets {
		sx := (float64(x) + off[0]) / float64(s.params.Scale) * frequency
		sy := (float64(y) + off[1]) / float64(s.params.Scale) * frequency
		sum += valueNoise(s.seed, sx, sy) * amplitude

		amplitude *= float64(s.params.Persistence)
		frequency *= float64(s.params.Lacunarity)
	}

	// inverse lerp from [-max, max]
	v := (sum + s.maxAmplitude) / (2 * s.maxAmplitude)
	return float32(math.Min(1, math.Max(0, v)))
}

// Noise2d is a convenience for sampling a single point.
func Noise2d(seed uint32, x, y float32, p Params) float32 {
	return NewSampler(seed, p).Height(x, y)
}

// valueNoise interpolates hashed lattice values in [-1, 1] with a smoothstep
// fade.
func valueNoise(seed uint32, x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	ix, iy := int32(int64(fx)), int32(int64(fy))
	tx, ty := fade(x-fx), fade(y-fy)

	a := lattice(seed, ix, iy)
	b := lattice(seed, ix+1, iy)
	c := lattice(seed, ix, iy+1)
	d := lattice(seed, ix+1, iy+1)
	return lerp(lerp(a, b, tx), lerp(c, d, tx), ty)
}

func lattice(seed uint32, x, y int32) float64 {
	return float64(hash2(seed, x, y))/math.MaxUint32*2 - 1
}

func spread(h uint32) float64 {
	return (float64(h)/math.MaxUint32*2 - 1) * octaveSpread
}

func fade(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
