package world

// placer scatters objects over the spawn square with a xorshift32 stream so a
// seed reproduces the same room.
type placer struct {
	state uint32
}

func newPlacer(seed uint32) *placer {
	if seed == 0 {
		seed = 0x12345678
	}
	return &placer{state: seed}
}

func (p *placer) next() uint32 {
	p.state = xorshift32(p.state)
	return p.state
}

// unit returns a value in [0, 1).
func (p *placer) unit() float64 {
	return float64(p.next()>>8) / float64(1<<24)
}

// pointXZ returns x, z in [-extent, extent).
func (p *placer) pointXZ(extent float64) (x, z float64) {
	x = p.unit()*2*extent - extent
	z = p.unit()*2*extent - extent
	return x, z
}

func xorshift32(x uint32) uint32 {
	if x == 0 {
		x = 0x6d2b79f5
	}
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}
