// Interactive mechanical sound-effect demo.
// Uses portaudio for audio output; keys trigger the stock effects.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/fatih/color"
	"github.com/gordonklaus/portaudio"
	"github.com/sfxmix/sfxmix"
)

var (
	flagHz   = flag.Int("hz", 63921, "output hz")
	flagGain = flag.Float64("gain", 1.0, "master trigger volume")
	flagSpin = flag.Bool("spin", false, "start with the disk motor running")
	flagNoUI = flag.Bool("noui", false, "turn off all UI, mostly useful in development")
	cyan     = color.New(color.FgCyan).SprintfFunc()
	green    = color.New(color.FgGreen).SprintfFunc()
	white    = color.New(color.FgWhite).SprintfFunc()
)

const (
	escape     = "\x1b["
	hideCursor = escape + "?25l"
	showCursor = escape + "?25h"
)

// pending collects key triggers from the keyboard goroutine; they are
// drained and timestamped on the audio callback, which is the only place
// the player is touched.
type pending struct {
	mu  sync.Mutex
	ids []sfxmix.SampleID
}

func (p *pending) push(id sfxmix.SampleID) {
	p.mu.Lock()
	p.ids = append(p.ids, id)
	p.mu.Unlock()
}

func (p *pending) drain(dst []sfxmix.SampleID) []sfxmix.SampleID {
	p.mu.Lock()
	dst = append(dst[:0], p.ids...)
	p.ids = p.ids[:0]
	p.mu.Unlock()
	return dst
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("sfxplay: ")
	flag.Parse()

	pool := sfxmix.NewPool()
	sfxmix.RegisterStockSamples(pool)
	player := sfxmix.NewPlayer(pool, *flagHz)

	// One convolution voice per triggerable effect; they all share the
	// bus so the per-frame inverse FFT cost does not grow with keys hit.
	voiceIDs := []sfxmix.SampleID{
		sfxmix.SampleDiskStep1, sfxmix.SampleDiskStep2,
		sfxmix.SampleDiskStep2Half, sfxmix.SampleDiskStep3,
		sfxmix.SampleSpeakerStep, sfxmix.SampleRelayClick,
		sfxmix.SamplePrinterPin, sfxmix.SamplePrinterPlaten,
		sfxmix.SamplePrinterRetract, sfxmix.SamplePrinterHome,
	}
	voices := make(map[sfxmix.SampleID]*sfxmix.Voice, len(voiceIDs))
	for _, id := range voiceIDs {
		voices[id] = player.AddConvolvedSound(id)
	}

	var spin *sfxmix.DirectVoice
	if *flagSpin {
		spin = player.PlayDirect(pool.Stock(sfxmix.SampleDiskRotation), 0.5, 64, true)
	}

	queue := &pending{}
	gain := float32(*flagGain)

	if err := portaudio.Initialize(); err != nil {
		log.Fatal(err)
	}
	defer portaudio.Terminate()

	scratch := make([]sfxmix.SampleID, 0, 16)
	streamCB := func(out []int16) {
		scratch = queue.drain(scratch)
		now := player.CurrentTick()
		for _, id := range scratch {
			// SampleDiskRotation is the motor toggle; everything else
			// is a one-shot trigger.
			if id == sfxmix.SampleDiskRotation {
				if spin != nil {
					spin.Stop()
					spin = nil
				} else {
					spin = player.PlayDirect(pool.Stock(id), 0.5, 64, true)
				}
				continue
			}
			if v := voices[id]; v != nil {
				v.Play(now, gain)
			}
		}
		player.GenerateAudio(out)
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, float64(*flagHz), 1024, streamCB)
	if err != nil {
		log.Fatal(err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		log.Fatal(err)
	}
	defer stream.Stop()

	uiPrint := func(format string, a ...any) {
		if !*flagNoUI {
			fmt.Printf(format, a...)
		}
	}

	stopFn := func() {
		stream.Stop()
		portaudio.Terminate()
		uiPrint(showCursor + "\n")
		os.Exit(0)
	}

	sigch := make(chan os.Signal, 5)
	signal.Notify(sigch, syscall.SIGINT)
	go func() {
		for range sigch {
			stopFn()
		}
	}()

	uiPrint(hideCursor)
	uiPrint("%s\n", cyan("sfxplay - mechanical sound effect demo"))
	uiPrint("%s\n", white("  1-4 head steps   s speaker   r relay"))
	uiPrint("%s\n", white("  p pin  o platen  b retract  h home"))
	uiPrint("%s\n", white("  d toggle disk motor, esc quits"))

	keymap := map[rune]sfxmix.SampleID{
		'1': sfxmix.SampleDiskStep1,
		'2': sfxmix.SampleDiskStep2,
		'3': sfxmix.SampleDiskStep2Half,
		'4': sfxmix.SampleDiskStep3,
		's': sfxmix.SampleSpeakerStep,
		'r': sfxmix.SampleRelayClick,
		'p': sfxmix.SamplePrinterPin,
		'o': sfxmix.SamplePrinterPlaten,
		'b': sfxmix.SamplePrinterRetract,
		'h': sfxmix.SamplePrinterHome,
	}

	keyboard.Listen(func(key keys.Key) (stop bool, err error) {
		switch key.Code {
		case keys.CtrlC, keys.Escape:
			stopFn()
		case keys.RuneKey:
			r := key.Runes[0]
			if r == 'd' {
				queue.push(sfxmix.SampleDiskRotation)
				uiPrint("\r%s", white("motor     "))
				break
			}
			if id, ok := keymap[r]; ok {
				queue.push(id)
				uiPrint("\r%s", green("%c         ", r))
			}
		}
		return false, nil
	})
}
