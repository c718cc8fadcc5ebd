package sfxmix

// Pool owns the stock sample registry and a recycling arena for Voice
// objects. Stock samples are registered once at startup, indexed by their
// 1-based SampleID; dormant voices keep their large buffers across reuse
// so triggering a new effect never allocates in the steady state.
//
// Like everything else in this package the Pool is single-threaded: all
// calls must come from the mixing goroutine.
type Pool struct {
	stock []*Sample
	free  []*Voice
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// RegisterStock inserts or replaces the stock sample at id. pcm, rate and
// volume have the same meaning as in NewSample. Registering SampleNone is
// a no-op.
func (p *Pool) RegisterStock(id SampleID, pcm []int16, rate float32, volume float32) {
	if id == SampleNone {
		return
	}
	slot := int(id) - 1
	for len(p.stock) <= slot {
		p.stock = append(p.stock, nil)
	}
	p.stock[slot] = NewSample(pcm, rate, volume)
}

// Stock returns the sample registered at id, or nil for SampleNone and
// unknown IDs. Callers treat nil as "no voice created".
func (p *Pool) Stock(id SampleID) *Sample {
	slot := int(id) - 1
	if slot < 0 || slot >= len(p.stock) {
		return nil
	}
	return p.stock[slot]
}

// Shutdown drops all stock samples and recycled voices.
func (p *Pool) Shutdown() {
	p.stock = nil
	p.free = nil
}

// allocVoice returns a dormant voice from the arena, or a fresh one with
// its buffers allocated.
func (p *Pool) allocVoice() *Voice {
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return v
	}
	return &Voice{
		impulse:  make([]float32, fftLen),
		spectrum: make([]complex64, specLen),
	}
}

// freeVoice detaches v from its player, resets it to default state and
// returns it to the arena. The impulse and spectrum buffers are kept.
func (p *Pool) freeVoice(v *Voice) {
	if v.player != nil {
		v.player.unlinkVoice(v)
		v.player = nil
	}
	v.out = nil
	v.id = SampleNone
	v.baseTime = 0
	v.hasImpulse = false
	clear(v.impulse)
	p.free = append(p.free, v)
}
