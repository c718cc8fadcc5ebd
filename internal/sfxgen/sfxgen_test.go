package sfxgen

import "testing"

const rate = 63920.8

func TestRecipesAreDeterministic(t *testing.T) {
	recipes := map[string]func() []int16{
		"disk rotation":   func() []int16 { return DiskRotation(rate) },
		"disk step 1":     func() []int16 { return DiskStep(1, rate) },
		"disk step 2":     func() []int16 { return DiskStep(2, rate) },
		"disk step 3":     func() []int16 { return DiskStep(3, rate) },
		"speaker step":    func() []int16 { return SpeakerStep(rate) },
		"relay click":     func() []int16 { return RelayClick(rate) },
		"printer pin":     func() []int16 { return PrinterPin(rate) },
		"printer platen":  func() []int16 { return PrinterPlaten(rate) },
		"printer retract": func() []int16 { return PrinterRetract(rate) },
		"printer home":    func() []int16 { return PrinterHome(rate) },
	}

	for name, gen := range recipes {
		a, b := gen(), gen()
		if len(a) == 0 {
			t.Errorf("%s: empty PCM", name)
			continue
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("%s: not deterministic at %d", name, i)
				break
			}
		}

		var peak int
		for _, s := range a {
			v := int(s)
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
		if peak < 500 {
			t.Errorf("%s: peak %d, effectively silent", name, peak)
		}
		if peak >= 32767 {
			t.Errorf("%s: clipped", name)
		}
	}
}

func TestDiskRotationLoopLength(t *testing.T) {
	pcm := DiskRotation(rate)
	if len(pcm) != 2048 {
		t.Errorf("expected 2048-sample loop, got %d", len(pcm))
	}
}
