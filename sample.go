package sfxmix

// Sample is an immutable mono PCM buffer shared by any number of voices.
//
// The backing storage is laid out for branch-free reads by the mixers:
// an 8-sample header that mirrors the last 8 payload samples (so a looped
// read can read behind the wrap point contiguously), the payload itself,
// and a zero footer so a one-shot read can interpolate past the final
// sample. Total storage is rounded up to a multiple of 4 samples and the
// first 8 footer samples are always zero.
type Sample struct {
	data   []int16
	count  int
	rate   float32
	volume float32
}

// NewSample builds a Sample from raw signed 16-bit mono PCM. rate is the
// source sampling rate in Hz. volume is a linear gain where 1.0 is unity;
// it is stored pre-divided by 32767 so mixers can multiply raw int16
// sample values directly and land on unity-scale float output.
func NewSample(pcm []int16, rate float32, volume float32) *Sample {
	count := len(pcm)
	total := (count + 16 + 3) &^ 3

	s := &Sample{
		data:   make([]int16, total),
		count:  count,
		rate:   rate,
		volume: volume / 32767.0,
	}
	copy(s.data[8:], pcm)

	// Mirror the payload tail into the header. For payloads shorter than
	// 8 samples the mirror wraps, which keeps the loop-read invariant
	// data[i] == data[i+count] intact for any count.
	for i := 0; i < 8 && count > 0; i++ {
		j := count - 8 + i
		for j < 0 {
			j += count
		}
		s.data[i] = s.data[8+j]
	}

	return s
}

// Count returns the number of payload samples.
func (s *Sample) Count() int { return s.count }

// Rate returns the source sampling rate in Hz. The convolution path
// ignores this; only the direct-mix path resamples.
func (s *Sample) Rate() float32 { return s.rate }

// Volume returns the stored per-int16 gain (user volume / 32767).
func (s *Sample) Volume() float32 { return s.volume }

// OneShot returns a payload view whose index 0 is the first payload
// sample. Reads may run up to 8 samples past Count into the zero footer.
func (s *Sample) OneShot() []int16 { return s.data[8:] }

// Loop returns a view whose index 0 is the header. A looping reader wraps
// its position modulo Count on this view; the header mirror guarantees
// reads up to 8 samples ahead of any in-range position are valid.
func (s *Sample) Loop() []int16 { return s.data }
