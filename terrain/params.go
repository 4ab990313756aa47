package terrain

// Params shape the octave noise used to generate terrain.
type Params struct {
	Scale       float32
	Octaves     uint32
	Persistence float32
	Lacunarity  float32
	OffsetX     float32
	OffsetY     float32
}

// DefaultParams returns the parameters the CLI generates worlds with.
func DefaultParams() Params {
	return Params{
		Scale:       200,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2,
	}
}

// Validate clamps the parameters into their usable ranges.
func (p *Params) Validate() {
	if p.Scale <= 0 {
		p.Scale = 0.0001
	}
	if p.Octaves < 1 {
		p.Octaves = 1
	} else if p.Octaves > MaxOctaves {
		p.Octaves = MaxOctaves
	}
	if p.Persistence < 0 {
		p.Persistence = 0
	} else if p.Persistence > 1 {
		p.Persistence = 1
	}
}
