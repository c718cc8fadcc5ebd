package sfxmix

// These are the scalar inner mixing loops of the direct path. There are
// two: a mono mix for callers without a right channel, and a stereo mix.
// Both read two adjacent source samples and interpolate linearly between
// them; the Sample buffer padding guarantees data[i+1] is always valid.
//
// The output buffers are accumulated into without clamping. Saturation is
// applied when the final audio is converted for the host device.

func mixDirectMono_Scalar(pos, epos, step uint, data []int16, vol float32, dst []float32, cur int) (uint, int) {
	for pos < epos {
		i := pos >> 16
		f := float32(pos&0xFFFF) / 65536
		s0 := float32(data[i])
		sd := s0 + (float32(data[i+1])-s0)*f

		dst[cur] += sd * vol

		pos += step
		cur++
	}
	return pos, cur
}

func mixDirectStereo_Scalar(pos, epos, step uint, data []int16, lvol, rvol float32, dstL, dstR []float32, cur int) (uint, int) {
	for pos < epos {
		i := pos >> 16
		f := float32(pos&0xFFFF) / 65536
		s0 := float32(data[i])
		sd := s0 + (float32(data[i+1])-s0)*f

		dstL[cur] += sd * lvol
		dstR[cur] += sd * rvol

		pos += step
		cur++
	}
	return pos, cur
}
