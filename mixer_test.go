package sfxmix

import (
	"math"
	"testing"
)

func TestDirectOneShotPlaysAndDetaches(t *testing.T) {
	_, player := newTestPlayer()

	pcm := make([]int16, 100)
	for i := range pcm {
		pcm[i] = 1000
	}
	s := NewSample(pcm, float32(testMixRate), 1.0)
	player.PlayDirect(s, 1.0, 64, false)

	dstL := make([]float32, 200)
	dstR := make([]float32, 200)
	player.MixAudio(dstL, dstR)

	// Unity rate ratio: one output sample per source sample, center pan.
	wantL := 1000.0 / 32767.0 * 63.0 / 128.0
	wantR := 1000.0 / 32767.0 * 64.0 / 128.0
	expectNear(t, "dstL[0]", float64(dstL[0]), wantL, 1e-6)
	expectNear(t, "dstR[0]", float64(dstR[0]), wantR, 1e-6)
	expectNear(t, "dstL[99]", float64(dstL[99]), wantL, 1e-6)

	for i := 100; i < 200; i++ {
		if dstL[i] != 0 || dstR[i] != 0 {
			t.Fatalf("one-shot leaked past its end at %d", i)
		}
	}
	if len(player.direct) != 0 {
		t.Errorf("expected finished voice to detach, %d still active", len(player.direct))
	}
}

func TestDirectLoopIsPeriodic(t *testing.T) {
	_, player := newTestPlayer()

	const count = 50
	pcm := make([]int16, count)
	for i := range pcm {
		pcm[i] = int16(i * 10)
	}
	s := NewSample(pcm, float32(testMixRate), 1.0)
	player.PlayDirect(s, 1.0, 0, true)

	dst := make([]float32, 4*count)
	player.MixAudio(dst, nil)

	for i := 0; i < 3*count; i++ {
		if dst[i] != dst[i+count] {
			t.Fatalf("loop not periodic at %d: %g vs %g", i, dst[i], dst[i+count])
		}
	}
	if len(player.direct) != 1 {
		t.Errorf("looping voice should stay active, %d in list", len(player.direct))
	}
}

func TestDirectPanExtremes(t *testing.T) {
	_, player := newTestPlayer()

	pcm := make([]int16, 40)
	for i := range pcm {
		pcm[i] = 2000
	}
	s := NewSample(pcm, float32(testMixRate), 1.0)
	player.PlayDirect(s, 1.0, 0, false)

	dstL := make([]float32, 40)
	dstR := make([]float32, 40)
	player.MixAudio(dstL, dstR)

	if dstL[10] == 0 {
		t.Error("full-left voice missing from left channel")
	}
	if dstR[10] != 0 {
		t.Errorf("full-left voice leaked into right channel: %g", dstR[10])
	}
}

func TestDirectResampleHalfRate(t *testing.T) {
	_, player := newTestPlayer()

	// A source at half the mix rate advances half a source sample per
	// output sample; a linear ramp interpolates to half steps.
	pcm := []int16{0, 1000, 2000, 3000, 4000, 5000, 6000, 7000}
	s := NewSample(pcm, float32(testMixRate)/2, 1.0)
	v := player.PlayDirect(s, 1.0, 64, false)
	if v.step != 1<<15 {
		t.Fatalf("expected step 0.5 in 16.16, got %#x", v.step)
	}

	dst := make([]float32, 16)
	player.MixAudio(dst, nil)

	scale := 1.0 / 32767.0 * (63.0/128.0 + 64.0/128.0)
	for i := 0; i < 14; i++ {
		want := float64(i) * 500 * scale
		if math.Abs(float64(dst[i])-want) > 1e-6 {
			t.Fatalf("sample %d: expected %g, got %g", i, want, dst[i])
		}
	}
}

func TestDirectStopRemovesVoice(t *testing.T) {
	_, player := newTestPlayer()

	s := NewSample(make([]int16, 100), float32(testMixRate), 1.0)
	v := player.PlayDirect(s, 1.0, 64, true)
	v.Stop()

	dst := make([]float32, 32)
	player.MixAudio(dst, nil)
	if len(player.direct) != 0 {
		t.Errorf("stopped voice still active: %d in list", len(player.direct))
	}
}

func TestPlayDirectZeroRateAdvances(t *testing.T) {
	_, player := newTestPlayer()

	// A rate below mixRate/65536 truncates to a zero 16.16 step; the mix
	// loop must still make forward progress.
	s := NewSample(rampPCM(10), 0, 1.0)
	v := player.PlayDirect(s, 1.0, 64, false)
	if v == nil {
		t.Fatal("expected a voice for a zero-rate sample")
	}
	if v.step == 0 {
		t.Fatal("zero step would stall the mix loop")
	}

	dst := make([]float32, 64)
	player.MixAudio(dst, nil)

	if v.pos == 0 {
		t.Error("voice position did not advance")
	}
}

func TestPlayDirectRejectsEmpty(t *testing.T) {
	_, player := newTestPlayer()
	if v := player.PlayDirect(nil, 1.0, 64, false); v != nil {
		t.Error("expected no voice for a nil sample")
	}
	s := NewSample(nil, float32(testMixRate), 1.0)
	if v := player.PlayDirect(s, 1.0, 64, false); v != nil {
		t.Error("expected no voice for an empty sample")
	}
}
