package sfxmix

import (
	"math"
	"testing"
)

const testMixRate = 63921

func newTestPlayer() (*Pool, *Player) {
	pool := NewPool()
	return pool, NewPlayer(pool, testMixRate)
}

// deltaPCM returns PCM holding a single impulse of the given value at
// index 0, padded with zeros to n samples.
func deltaPCM(val int16, n int) []int16 {
	pcm := make([]int16, n)
	pcm[0] = val
	return pcm
}

// rampPCM returns a short deterministic test waveform.
func rampPCM(n int) []int16 {
	pcm := make([]int16, n)
	for i := range pcm {
		pcm[i] = int16(100 + i*50)
	}
	return pcm
}

// trigger is a (tick offset, volume) pair relative to the frame origin.
type trigger struct {
	off uint32
	vol float32
}

// refImpulses builds the impulse train the voice is specified to build:
// two-tap linear fractional delay, tap 0 as vol - vol*f.
func refImpulses(trigs []trigger) []float32 {
	imp := make([]float32, MaxFrame)
	for _, tr := range trigs {
		if tr.off >= (MaxFrame-1)*TicksPerSample {
			continue
		}
		k := tr.off / TicksPerSample
		fv := tr.vol * (float32(tr.off%TicksPerSample) / TicksPerSample)
		imp[k] += tr.vol - fv
		imp[k+1] += fv
	}
	return imp
}

// refConvolve is the direct sparse time-domain convolution the FFT path
// must agree with: impulse train against scale*pcm, truncated to n
// output samples.
func refConvolve(imp []float32, pcm []int16, scale float32, n int) []float32 {
	out := make([]float32, n)
	for k, a := range imp {
		if a == 0 {
			continue
		}
		for j, s := range pcm {
			if k+j >= n {
				break
			}
			out[k+j] += a * float32(s) * scale
		}
	}
	return out
}

func maxAbsDiff(a, b []float32) float64 {
	var m float64
	for i := range a {
		d := math.Abs(float64(a[i]) - float64(b[i]))
		if d > m {
			m = d
		}
	}
	return m
}

func sum64(a []float32) float64 {
	var s float64
	for _, v := range a {
		s += float64(v)
	}
	return s
}

func expectNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: expected %g, got %g (tol %g)", name, want, got, tol)
	}
}
