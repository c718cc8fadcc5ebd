package sfxmix

// The direct-mix path plays per-instance, pitch-variable effects by
// resampling PCM straight into the output frame. It shares the frame
// buffers with the convolution bus; both paths are purely additive so
// their order within a frame does not matter.
//
// Positions are 16.16 fixed point over a Sample view: one-shots run over
// OneShot (interpolation read-ahead lands in the zero footer), loops run
// over Loop where the 8-sample header mirror makes the wrap seamless
// without a branch in the inner loop.

// DirectVoice is one active direct-mix effect instance.
type DirectVoice struct {
	sample *Sample
	data   []int16 // view the position indexes into
	pos    uint    // 16.16 position
	end    uint    // 16.16 end of payload
	step   uint    // 16.16 playback rate ratio
	gain   float32
	pan    int // 0 = full left, 127 = full right
	loop   bool
	done   bool

	player *Player
}

// PlayDirect starts a direct-mix voice for s at the given linear gain and
// pan position. Looping voices play until stopped; one-shots detach
// themselves when the payload runs out. The playback rate follows the
// sample's own rate against the player's mix rate.
func (p *Player) PlayDirect(s *Sample, gain float32, pan int, loop bool) *DirectVoice {
	if s == nil || s.Count() == 0 {
		return nil
	}
	if pan < 0 {
		pan = 0
	} else if pan > 127 {
		pan = 127
	}

	step := uint(s.Rate() * 65536 / float32(p.mixRate))
	if step == 0 {
		// A zero step would never advance the mix loop.
		step = 1
	}

	v := &DirectVoice{
		sample: s,
		end:    uint(s.Count()) << 16,
		step:   step,
		gain:   gain,
		pan:    pan,
		loop:   loop,
		player: p,
	}
	if loop {
		v.data = s.Loop()
	} else {
		v.data = s.OneShot()
	}

	p.direct = append(p.direct, v)
	return v
}

// Stop detaches the voice; it stops contributing from the next frame on.
func (v *DirectVoice) Stop() {
	v.done = true
}

// mixDirect resamples every active direct voice into the frame buffers,
// dropping voices that finished.
func (p *Player) mixDirect(dstL, dstR []float32) {
	n := len(dstL)
	compact := false

	for _, v := range p.direct {
		if v.done {
			compact = true
			continue
		}

		lvol := v.gain * float32(127-v.pan) / 128 * v.sample.volume
		rvol := v.gain * float32(v.pan) / 128 * v.sample.volume

		pos := v.pos
		cur := 0
		for cur < n {
			epos := pos + uint(n-cur)*v.step
			if epos > v.end {
				epos = v.end
			}
			if dstR == nil {
				pos, cur = mixDirectMono_Scalar(pos, epos, v.step, v.data, lvol+rvol, dstL, cur)
			} else {
				pos, cur = mixDirectStereo_Scalar(pos, epos, v.step, v.data, lvol, rvol, dstL, dstR, cur)
			}
			if pos >= v.end {
				if !v.loop {
					v.done = true
					compact = true
					break
				}
				pos -= v.end
			}
		}
		v.pos = pos
	}

	if compact {
		live := p.direct[:0]
		for _, v := range p.direct {
			if !v.done {
				live = append(live, v)
			}
		}
		for i := len(live); i < len(p.direct); i++ {
			p.direct[i] = nil
		}
		p.direct = live
	}
}
