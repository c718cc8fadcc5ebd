// Package sfxgen synthesizes the stock mechanical sound effects as int16
// PCM. The repository carries no recorded assets; every effect is built
// from damped oscillators and filtered shift-register noise with fixed
// seeds, so the generated PCM is bit-identical across runs and platforms
// that implement IEEE 754 math (which the tests rely on).
package sfxgen

import "math"

// rng is a xorshift32 noise source. Deliberately not math/rand: the
// sequence is part of the stock sample definition and must never change
// between Go releases.
type rng struct{ s uint32 }

func (r *rng) next() float64 {
	r.s ^= r.s << 13
	r.s ^= r.s >> 17
	r.s ^= r.s << 5
	return float64(int32(r.s)) / 2147483648.0
}

// damped renders an exponentially decaying sine. decay is the amplitude
// half-life in seconds.
func damped(n int, freq, decay, amp, rate float64) []float64 {
	out := make([]float64, n)
	w := 2 * math.Pi * freq / rate
	k := math.Ln2 / (decay * rate)
	for i := range out {
		out[i] = amp * math.Exp(-k*float64(i)) * math.Sin(w*float64(i))
	}
	return out
}

// noise renders one-pole low-passed shift-register noise with an
// exponential decay envelope.
func noise(n int, cutoff, decay, amp, rate float64, seed uint32) []float64 {
	out := make([]float64, n)
	r := rng{s: seed}
	a := 1 - math.Exp(-2*math.Pi*cutoff/rate)
	k := math.Ln2 / (decay * rate)
	var lp float64
	for i := range out {
		lp += a * (r.next() - lp)
		out[i] = amp * math.Exp(-k*float64(i)) * lp
	}
	return out
}

// mix sums any number of equal-or-shorter component buffers.
func mix(n int, parts ...[]float64) []float64 {
	out := make([]float64, n)
	for _, p := range parts {
		for i, v := range p {
			out[i] += v
		}
	}
	return out
}

// quantize converts unity-scale floats to int16 with saturation.
func quantize(in []float64) []int16 {
	out := make([]int16, len(in))
	for i, v := range in {
		s := math.Round(v * 32767)
		if s > 32767 {
			s = 32767
		} else if s < -32768 {
			s = -32768
		}
		out[i] = int16(s)
	}
	return out
}

// DiskRotation is the looping drive-motor bed: a low hum with integer
// numbers of cycles per buffer plus noise crossfaded over the last 64
// samples so the loop seam is inaudible.
func DiskRotation(rate float64) []int16 {
	const n = 2048
	const fade = 64

	out := make([]float64, n)
	// Harmonics with whole cycles per buffer are seamless by
	// construction.
	for h, amp := range []float64{0.18, 0.10, 0.05} {
		cycles := float64(9 * (h + 1))
		w := 2 * math.Pi * cycles / n
		for i := range out {
			out[i] += amp * math.Sin(w*float64(i))
		}
	}

	// Bearing noise, generated long and folded back over the seam.
	nz := noise(n+fade, 900, 10, 0.12, rate, 0x1234567)
	for i := 0; i < n; i++ {
		out[i] += nz[i]
	}
	for i := 0; i < fade; i++ {
		g := float64(i) / fade
		out[i] = out[i]*g + (out[i]+nz[n+i])*(1-g)
	}

	return quantize(out)
}

// DiskStep is a head-stepper thunk. The three variants model the
// different drive mechanisms: 1 is short and clicky, 2 is the nominal
// two-phase step, 3 is a slower buzzier movement.
func DiskStep(variant int, rate float64) []int16 {
	switch variant {
	case 1:
		return quantize(mix(1400,
			damped(1400, 620, 0.004, 0.55, rate),
			noise(500, 2600, 0.002, 0.30, rate, 0x2468ACE),
		))
	case 3:
		return quantize(mix(2500,
			damped(2500, 240, 0.012, 0.50, rate),
			damped(1800, 900, 0.005, 0.25, rate),
			noise(1200, 1500, 0.004, 0.22, rate, 0x3579BDF),
		))
	default:
		return quantize(mix(2000,
			damped(2000, 380, 0.008, 0.55, rate),
			damped(1000, 1300, 0.003, 0.30, rate),
			noise(800, 2000, 0.003, 0.25, rate, 0x13572468),
		))
	}
}

// SpeakerStep is the console speaker keyboard click.
func SpeakerStep(rate float64) []int16 {
	return quantize(mix(600,
		damped(600, 1900, 0.0015, 0.70, rate),
		noise(200, 4000, 0.0008, 0.20, rate, 0xCAFE123),
	))
}

// RelayClick is a cassette-motor relay contact.
func RelayClick(rate float64) []int16 {
	return quantize(mix(900,
		damped(900, 2800, 0.001, 0.60, rate),
		damped(500, 5200, 0.0006, 0.30, rate),
		noise(300, 5000, 0.0007, 0.25, rate, 0xDEAD777),
	))
}

// PrinterPin is a single dot-matrix pin impact.
func PrinterPin(rate float64) []int16 {
	return quantize(mix(700,
		damped(700, 3400, 0.0009, 0.65, rate),
		noise(350, 6000, 0.0006, 0.30, rate, 0x600D1DEA),
	))
}

// PrinterPlaten is the platen advancing one line.
func PrinterPlaten(rate float64) []int16 {
	return quantize(mix(2400,
		damped(2400, 300, 0.010, 0.45, rate),
		noise(2000, 1100, 0.007, 0.30, rate, 0x0BADC0DE),
	))
}

// PrinterRetract is the print head flying back to the margin.
func PrinterRetract(rate float64) []int16 {
	return quantize(mix(2200,
		damped(2200, 500, 0.007, 0.40, rate),
		noise(1800, 1800, 0.006, 0.35, rate, 0x7E57AB1E),
	))
}

// PrinterHome is the carriage hitting the home stop.
func PrinterHome(rate float64) []int16 {
	return quantize(mix(1600,
		damped(1600, 210, 0.009, 0.55, rate),
		damped(900, 700, 0.004, 0.25, rate),
		noise(600, 1400, 0.003, 0.20, rate, 0x5EED5EED),
	))
}
