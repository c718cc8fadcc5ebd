package sfxmix

import "fmt"

const mixBufferLen = 8192 // samples per channel of the interleave scratch

// Player is the frame driver. It owns one convolution bus and the lists
// of active voices, routes trigger timestamps onto the machine-tick
// clock, and commits audio frames: per frame every convolution voice
// flushes its impulse train into the bus, the direct-mix voices resample
// into the output, and the bus drains through its overlap ring.
//
// The player keeps a running machine-tick clock that advances by
// TicksPerSample for every output sample mixed. Embedders timestamp
// triggers with CurrentTick (or their own tick source synchronized to
// it); delivery across goroutines is the embedder's responsibility and
// must happen before the next MixAudio call.
type Player struct {
	pool *Pool
	out  *Convolver

	mixRate  int
	lastTick uint32

	voices []*Voice       // active convolution voices
	direct []*DirectVoice // active direct-mix voices

	mixL, mixR []float32 // scratch for GenerateAudio
}

// NewPlayer returns a player mixing at mixRate Hz. Stock samples are
// looked up in pool, which also provides the voice arena.
func NewPlayer(pool *Pool, mixRate int) *Player {
	return &Player{
		pool:    pool,
		out:     NewConvolver(),
		mixRate: mixRate,
		mixL:    make([]float32, mixBufferLen),
		mixR:    make([]float32, mixBufferLen),
	}
}

// CurrentTick returns the machine tick of the next sample to be mixed.
func (p *Player) CurrentTick() uint32 { return p.lastTick }

// MixRate returns the output sampling rate in Hz.
func (p *Player) MixRate() int { return p.mixRate }

// AddConvolvedSound creates a convolution voice for the stock sample id.
// Returns nil when no sample is registered under id.
func (p *Player) AddConvolvedSound(id SampleID) *Voice {
	s := p.pool.Stock(id)
	if s == nil {
		return nil
	}
	v := p.pool.allocVoice()
	v.init(p, p.out, id, s.OneShot()[:s.Count()], s.Volume(), p.lastTick)
	p.voices = append(p.voices, v)
	return v
}

// AddConvolvedSoundPCM creates a convolution voice for ad-hoc PCM at
// unity gain. The PCM is only read during the call; the caller may reuse
// its slice afterwards.
func (p *Player) AddConvolvedSoundPCM(pcm []int16) *Voice {
	v := p.pool.allocVoice()
	v.init(p, p.out, SampleNone, pcm, 1.0/32767.0, p.lastTick)
	p.voices = append(p.voices, v)
	return v
}

// MixAudio accumulates len(dstL) output samples into dstL and, when
// non-nil, dstR. It never overwrites the destination. Requests longer
// than MaxFrame are split internally; the tick clock advances by
// TicksPerSample per sample regardless of voice activity.
func (p *Player) MixAudio(dstL, dstR []float32) {
	if dstR != nil && len(dstR) != len(dstL) {
		panic(fmt.Sprintf("sfxmix: mismatched mix buffers %d and %d", len(dstL), len(dstR)))
	}

	off := 0
	remain := len(dstL)
	for remain > 0 {
		n := remain
		if n > MaxFrame {
			n = MaxFrame
		}
		next := p.lastTick + uint32(n)*TicksPerSample

		for _, v := range p.voices {
			v.commitFrame(next)
		}

		l := dstL[off : off+n]
		var r []float32
		if dstR != nil {
			r = dstR[off : off+n]
		}
		p.mixDirect(l, r)
		p.out.Commit(l, r, n)

		p.lastTick = next
		off += n
		remain -= n
	}
}

// GenerateAudio fills out with interleaved stereo int16 samples (LRLR...)
// and returns the number of stereo samples generated. Convenience wrapper
// over MixAudio for hosts that feed int16 device buffers.
func (p *Player) GenerateAudio(out []int16) int {
	count := len(out) / 2
	if count > mixBufferLen {
		panic(fmt.Sprintf("sfxmix: mix buffer too small, %d samples wanted", count))
	}

	clear(p.mixL[:count])
	clear(p.mixR[:count])
	p.MixAudio(p.mixL[:count], p.mixR[:count])

	for i := 0; i < count; i++ {
		out[i*2+0] = clamp16(p.mixL[i])
		out[i*2+1] = clamp16(p.mixR[i])
	}

	return count
}

// Shutdown stops every active voice and returns them to the pool.
func (p *Player) Shutdown() {
	for len(p.voices) > 0 {
		p.pool.freeVoice(p.voices[len(p.voices)-1])
	}
	p.direct = p.direct[:0]
}

// stopVoice recycles v through the pool, which unlinks it from the
// active list. Two-phase so the player never holds a dangling pointer.
func (p *Player) stopVoice(v *Voice) {
	p.pool.freeVoice(v)
}

// unlinkVoice removes v from the active list. Called by the pool during
// freeVoice.
func (p *Player) unlinkVoice(v *Voice) {
	for i, av := range p.voices {
		if av == v {
			last := len(p.voices) - 1
			p.voices[i] = p.voices[last]
			p.voices[last] = nil
			p.voices = p.voices[:last]
			return
		}
	}
}

// clamp16 converts a unity-scale float sample to int16 with saturation.
// Saturation compares in float: converting an out-of-range float to an
// integer type is implementation-defined.
func clamp16(v float32) int16 {
	v *= 32767
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
