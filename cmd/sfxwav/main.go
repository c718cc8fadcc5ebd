// Renders a scripted disk-boot sound sequence to a WAV file (16-bit,
// stereo): drive motor spin-up, a burst of head steps, the cassette
// relay and some printer activity. Useful for listening tests without an
// audio device.

package main

import (
	"flag"
	"log"
	"os"

	"github.com/sfxmix/sfxmix"
	"github.com/sfxmix/sfxmix/wav"
)

var (
	flagOut     = flag.String("wav", "", "output WAVE file (required)")
	flagSeconds = flag.Float64("seconds", 4.0, "length of audio to render")
	flagHz      = flag.Int("hz", 63921, "output sampling rate")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sfxwav: ")
	flag.Parse()

	if *flagOut == "" {
		log.Fatal("No -wav option provided")
	}

	pool := sfxmix.NewPool()
	sfxmix.RegisterStockSamples(pool)
	player := sfxmix.NewPlayer(pool, *flagHz)

	wavF, err := os.Create(*flagOut)
	if err != nil {
		log.Fatal(err)
	}
	defer wavF.Close()

	wavW, err := wav.NewWriter(wavF, *flagHz)
	if err != nil {
		log.Fatal(err)
	}
	defer wavW.Finish()

	// Motor bed for the whole render.
	spin := player.PlayDirect(pool.Stock(sfxmix.SampleDiskRotation), 0.5, 64, true)
	defer spin.Stop()

	steps := player.AddConvolvedSound(sfxmix.SampleDiskStep2)
	relay := player.AddConvolvedSound(sfxmix.SampleRelayClick)
	pin := player.AddConvolvedSound(sfxmix.SamplePrinterPin)

	// Trigger script, in output samples from the start.
	type event struct {
		at    int
		voice *sfxmix.Voice
		vol   float32
	}
	var script []event
	script = append(script, event{2000, relay, 0.9})
	for i := 0; i < 40; i++ {
		// Seek across 40 tracks, one step every ~10ms.
		script = append(script, event{12000 + i*640, steps, 1.0})
	}
	for i := 0; i < 60; i++ {
		// A line of dot-matrix output.
		script = append(script, event{48000 + i*300, pin, 0.8})
	}

	total := int(*flagSeconds * float64(*flagHz))
	// Chunks must stay inside the trigger window so events timestamped
	// anywhere in the chunk are accepted.
	buf := make([]int16, 1024*2)
	rendered := 0

	for rendered < total {
		n := len(buf) / 2
		if n > total-rendered {
			n = total - rendered
		}

		// Fire every script event that lands in this chunk, stamped
		// with its exact machine tick.
		base := player.CurrentTick()
		for _, ev := range script {
			if ev.at >= rendered && ev.at < rendered+n {
				ev.voice.Play(base+uint32(ev.at-rendered)*sfxmix.TicksPerSample, ev.vol)
			}
		}

		player.GenerateAudio(buf[:n*2])
		if err := wavW.Write(buf[:n*2]); err != nil {
			log.Fatal(err)
		}
		rendered += n
	}
}
