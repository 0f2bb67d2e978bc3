package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

type decoder func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decoder{
	".mp3": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) },
	".ogg": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) },
	".wav": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
}

// Supported reports whether the file extension can be decoded
func Supported(file string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(file))]
	return ok
}

// Resolve finds a track referenced by a chart relative to dir
func Resolve(dir, reference string) (string, error) {
	file := reference
	if !filepath.IsAbs(file) {
		file = filepath.Join(dir, reference)
	}
	if _, err := os.Stat(file); nil != err {
		return "", &ResourceNotFoundError{Path: file, Err: err}
	}
	return file, nil
}

// The speaker is process wide and is initialised once, at the rate of the
// first track loaded.
var speakerRate beep.SampleRate

func initSpeaker(rate beep.SampleRate) error {
	if speakerRate != 0 {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/60)); nil != err {
		return fmt.Errorf("unable to initialise speaker: %w", err)
	}
	speakerRate = rate
	return nil
}

type DefaultPlayer struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	playing  atomic.Bool
}

func (p *DefaultPlayer) Load(file string) error {
	decode, ok := decoders[strings.ToLower(filepath.Ext(file))]
	if !ok {
		return fmt.Errorf("unsupported audio format: %v", file)
	}
	f, err := os.Open(file)
	if nil != err {
		if errors.Is(err, os.ErrNotExist) {
			return &ResourceNotFoundError{Path: file, Err: err}
		}
		return fmt.Errorf("unable to open %v: %w", file, err)
	}
	streamer, format, err := decode(f)
	if nil != err {
		f.Close()
		return fmt.Errorf("unable to decode %v: %w", file, err)
	}
	if err := initSpeaker(format.SampleRate); nil != err {
		streamer.Close()
		return err
	}

	p.Close()
	p.streamer = streamer
	p.format = format
	return nil
}

func (p *DefaultPlayer) Length() time.Duration {
	if nil == p.streamer {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

func (p *DefaultPlayer) Play(offset time.Duration) error {
	if nil == p.streamer {
		return errors.New("no track loaded")
	}
	p.Stop()

	position := 0
	if offset > 0 {
		position = p.format.SampleRate.N(offset)
	}
	if position >= p.streamer.Len() {
		return io.EOF
	}
	speaker.Lock()
	err := p.streamer.Seek(position)
	speaker.Unlock()
	if nil != err {
		return fmt.Errorf("unable to seek to %v: %w", offset, err)
	}

	var s beep.Streamer = p.streamer
	if p.format.SampleRate != speakerRate {
		s = beep.Resample(4, p.format.SampleRate, speakerRate, s)
	}
	p.playing.Store(true)
	speaker.Play(beep.Seq(s, beep.Callback(func() {
		p.playing.Store(false)
	})))
	return nil
}

func (p *DefaultPlayer) Stop() {
	if p.playing.Swap(false) {
		speaker.Clear()
	}
}

func (p *DefaultPlayer) Playing() bool {
	return p.playing.Load()
}

func (p *DefaultPlayer) Close() {
	p.Stop()
	if nil != p.streamer {
		p.streamer.Close()
		p.streamer = nil
	}
}
