package sfxmix

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

const (
	// fftLen is the transform length shared by every convolution voice on
	// a bus. Impulses are restricted to the first MaxFrame slots of a
	// frame and effects to MaxSample samples, so circular-convolution
	// wraparound never produces energy outside [0, fftLen).
	fftLen = 4096

	// MaxFrame is the largest number of output samples a single frame may
	// ask a Convolver for. Longer requests must be split by the caller.
	MaxFrame = 1536

	// MaxSample is the longest effect the convolution path can carry.
	// Longer PCM is truncated when a voice is initialized.
	MaxSample = fftLen - MaxFrame

	// specLen is the number of complex bins of the real transform.
	specLen = fftLen/2 + 1
)

// Convolver is a shared convolution output bus. Voices accumulate the
// product of their per-frame impulse spectrum and their cached sample
// spectrum into it; once per frame the bus runs a single inverse FFT and
// drains output through an overlap ring.
//
// A Convolver moves between three states: idle (accumulator and ring both
// zero), accumulating (at least one voice contributed this frame) and
// draining (the ring still holds tail samples from an earlier frame).
// All methods must be called from the one mixing goroutine.
type Convolver struct {
	plan *algofft.PlanRealT[float32, complex64]

	base      int  // ring rotation in samples, mod fftLen
	pending   int  // samples remaining in the overlap ring
	hasOutput bool // a voice accumulated this frame

	xform   []complex64 // scratch spectrum of one voice's impulse frame
	accum   []complex64 // frequency-domain accumulator, zero when idle
	overlap []float32   // time-domain ring of pending output
	scratch []float32   // time-domain scratch for transforms
}

// NewConvolver returns an idle convolution bus.
func NewConvolver() *Convolver {
	plan, err := algofft.NewPlanReal32(fftLen)
	if err != nil {
		// fftLen is a fixed power of two; plan creation cannot fail.
		panic(fmt.Sprintf("sfxmix: FFT plan: %v", err))
	}

	return &Convolver{
		plan:    plan,
		xform:   make([]complex64, specLen),
		accum:   make([]complex64, specLen),
		overlap: make([]float32, fftLen),
		scratch: make([]float32, fftLen),
	}
}

// preTransform converts at most MaxSample samples of int16 PCM to the
// frequency domain, scaling every bin by scale, and writes the result
// into dst. Passing the Sample's stored volume as scale folds both the
// 1/32767 normalization and the user gain into the spectrum, so impulse
// values added later are raw linear gains. Returns the clamped length.
func (c *Convolver) preTransform(pcm []int16, scale float32, dst []complex64) int {
	n := len(pcm)
	if n > MaxSample {
		n = MaxSample
	}

	for i := 0; i < n; i++ {
		c.scratch[i] = float32(pcm[i])
	}
	clear(c.scratch[n:])

	if err := c.plan.Forward(dst, c.scratch); err != nil {
		panic(fmt.Sprintf("sfxmix: forward FFT: %v", err))
	}
	cs := complex(scale, 0)
	for i := range dst {
		dst[i] *= cs
	}

	return n
}

// accumulate transforms one voice's impulse frame and multiply-adds it
// against the voice's sample spectrum into the accumulator. The impulse
// buffer must be zero outside [0, MaxFrame).
func (c *Convolver) accumulate(impulse []float32, spectrum []complex64) {
	if err := c.plan.Forward(c.xform, impulse); err != nil {
		panic(fmt.Sprintf("sfxmix: forward FFT: %v", err))
	}
	for i, s := range spectrum {
		c.accum[i] += c.xform[i] * s
	}
	c.hasOutput = true
}

// Commit produces up to n samples of bus output, adding them into dstL
// and, when non-nil, dstR. Mono callers pass a nil dstR. It never
// overwrites: the destination is accumulated into, and drained ring slots
// are zeroed so the ring is always clean for the next overlap-add.
// Returns false when the bus had nothing to emit.
func (c *Convolver) Commit(dstL, dstR []float32, n int) bool {
	if c.hasOutput {
		if err := c.plan.Inverse(c.scratch, c.accum); err != nil {
			panic(fmt.Sprintf("sfxmix: inverse FFT: %v", err))
		}
		clear(c.accum)
		c.hasOutput = false

		// Overlap-add the block into the ring starting at the rotation
		// point. Slots past the pending tail are already zero.
		n1 := fftLen - c.base
		for i, v := range c.scratch[:n1] {
			c.overlap[c.base+i] += v
		}
		for i, v := range c.scratch[n1:] {
			c.overlap[i] += v
		}
		c.pending = fftLen
	}

	if c.pending == 0 {
		return false
	}

	alen := n
	if alen > c.pending {
		alen = c.pending
	}
	alen1 := alen
	if alen1 > fftLen-c.base {
		alen1 = fftLen - c.base
	}

	drainInto(dstL, dstR, c.overlap[c.base:c.base+alen1], 0)
	drainInto(dstL, dstR, c.overlap[:alen-alen1], alen1)

	c.pending -= alen
	c.base = (c.base + alen) & (fftLen - 1)

	return true
}

// drainInto adds a span of ring samples into the output buffers starting
// at dst offset off, zeroing each ring slot as it is consumed.
func drainInto(dstL, dstR, ring []float32, off int) {
	if dstR == nil {
		for i, v := range ring {
			dstL[off+i] += v
			ring[i] = 0
		}
		return
	}
	for i, v := range ring {
		dstL[off+i] += v
		dstR[off+i] += v
		ring[i] = 0
	}
}
