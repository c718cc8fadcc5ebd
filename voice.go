package sfxmix

// TicksPerSample is the machine-clock divisor of the mixer: one output
// sample at the native mix rate spans 28 machine ticks.
const TicksPerSample = 28

// Voice is one active convolved effect. It carries the pre-transformed
// spectrum of its sample and builds a sparse impulse train for the
// current frame; triggers land in the impulse buffer with two-tap linear
// fractional-sample interpolation.
//
// Voices are created through a Player and handed back as plain pointers.
// The Player holds the only structural reference: calling Stop detaches
// the voice from its player and returns it to the pool arena, after which
// further Play calls are no-ops.
type Voice struct {
	id       SampleID
	baseTime uint32 // machine tick defining slot 0 of the impulse buffer

	hasImpulse bool
	impulse    []float32   // impulse train, zero outside [0, MaxFrame)
	spectrum   []complex64 // sample spectrum, scaled at init

	player *Player
	out    *Convolver
}

// init binds a recycled voice to a player and bus and pre-transforms the
// effect PCM. Samples longer than MaxSample are silently truncated; the
// spectrum reflects the truncation. scale folds normalization and sample
// gain into the spectrum (see Convolver.preTransform).
func (v *Voice) init(p *Player, out *Convolver, id SampleID, pcm []int16, scale float32, base uint32) {
	v.id = id
	v.baseTime = base
	v.hasImpulse = false
	v.player = p
	v.out = out
	out.preTransform(pcm, scale, v.spectrum)
}

// ID returns the stock sample ID the voice was created with, or
// SampleNone for ad-hoc PCM voices.
func (v *Voice) ID() SampleID { return v.id }

// Play schedules one acoustic event at machine tick t with the given
// linear volume. Triggers at or beyond the current frame window are
// silently dropped; within a frame trigger order does not matter because
// impulses are additive.
func (v *Voice) Play(t uint32, volume float32) {
	if v.player == nil {
		return
	}

	// Wrap-safe unsigned distance from the frame origin.
	off := t - v.baseTime
	if off >= (MaxFrame-1)*TicksPerSample {
		return
	}

	k := off / TicksPerSample
	fv := volume * (float32(off%TicksPerSample) / TicksPerSample)
	v.impulse[k] += volume - fv
	v.impulse[k+1] += fv
	v.hasImpulse = true
}

// commitFrame flushes the frame's impulse train into the bus accumulator
// and rebases the voice on the next frame's start tick. The impulse
// buffer is fully zero on return.
func (v *Voice) commitFrame(next uint32) {
	if v.hasImpulse {
		v.out.accumulate(v.impulse, v.spectrum)
		clear(v.impulse[:MaxFrame])
		v.hasImpulse = false
	}
	v.baseTime = next
}

// Stop detaches the voice from its player and recycles it. Safe to call
// more than once.
func (v *Voice) Stop() {
	if v.player != nil {
		v.player.stopVoice(v)
	}
}
