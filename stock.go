package sfxmix

import "github.com/sfxmix/sfxmix/internal/sfxgen"

// SampleID identifies a stock sample. IDs are dense and 1-based;
// SampleNone is reserved for "no sample" and ad-hoc PCM voices.
type SampleID uint32

const (
	SampleNone SampleID = iota
	SampleDiskRotation
	SampleDiskStep1
	SampleDiskStep2
	SampleDiskStep2Half
	SampleDiskStep3
	SampleSpeakerStep
	SampleRelayClick
	SamplePrinterPin
	SamplePrinterPlaten
	SamplePrinterRetract
	SamplePrinterHome

	numStockSamples = iota - 1
)

// NativeSampleRate is the sampling rate stock samples are authored at:
// the machine clock divided by TicksPerSample. The convolution path
// assumes its input is already at the mix rate, which holds for stock
// samples played at this rate.
const NativeSampleRate = 63920.8

// RegisterStockSamples fills pool with the built-in mechanical effect
// set. Registration order is fixed and must match the SampleID values.
func RegisterStockSamples(pool *Pool) {
	reg := func(id SampleID, pcm []int16, volume float32) {
		pool.RegisterStock(id, pcm, NativeSampleRate, volume)
	}

	step2 := sfxgen.DiskStep(2, NativeSampleRate)

	reg(SampleDiskRotation, sfxgen.DiskRotation(NativeSampleRate), 0.8)
	reg(SampleDiskStep1, sfxgen.DiskStep(1, NativeSampleRate), 1.0)
	reg(SampleDiskStep2, step2, 1.0)
	reg(SampleDiskStep2Half, step2[:len(step2)/2], 1.0)
	reg(SampleDiskStep3, sfxgen.DiskStep(3, NativeSampleRate), 1.0)
	reg(SampleSpeakerStep, sfxgen.SpeakerStep(NativeSampleRate), 1.0)
	reg(SampleRelayClick, sfxgen.RelayClick(NativeSampleRate), 0.9)
	reg(SamplePrinterPin, sfxgen.PrinterPin(NativeSampleRate), 1.0)
	reg(SamplePrinterPlaten, sfxgen.PrinterPlaten(NativeSampleRate), 0.9)
	reg(SamplePrinterRetract, sfxgen.PrinterRetract(NativeSampleRate), 0.9)
	reg(SamplePrinterHome, sfxgen.PrinterHome(NativeSampleRate), 0.9)
}
