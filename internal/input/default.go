package input

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/tapbeat/internal/log"
	"github.com/eiannone/keyboard"
)

type Action int

const (
	None Action = iota
	Tap
	Restart
	HardRestart
	Quit
)

type Event struct {
	Action Action
	Time   time.Time
}

// Mapping binds keys to actions. Escape and ctrl-c always quit.
type Mapping struct {
	Tap         []rune
	Restart     rune
	HardRestart rune
	Quit        rune
}

var DefaultMapping = Mapping{
	Tap:         []rune("fjdk"),
	Restart:     'r',
	HardRestart: 'R',
	Quit:        'q',
}

func (m Mapping) Translate(ev keyboard.KeyEvent) Action {
	switch ev.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return Quit
	case keyboard.KeySpace, keyboard.KeyEnter:
		return Tap
	}
	switch ev.Rune {
	case 0:
		return None
	case m.Restart:
		return Restart
	case m.HardRestart:
		return HardRestart
	case m.Quit:
		return Quit
	}
	for _, r := range m.Tap {
		if r == ev.Rune {
			return Tap
		}
	}
	return None
}

// ReadInput forwards mapped key presses until the keyboard is closed
func ReadInput(m Mapping, events chan<- *Event, l *log.Logger) error {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	go func() {
		for ev := range keys {
			if nil != ev.Err {
				l.Errorf("unable to read keyboard input: %v", ev.Err)
				return
			}
			action := m.Translate(ev)
			if action == None {
				continue
			}
			events <- &Event{Action: action, Time: time.Now()}
		}
	}()
	return nil
}

func Close() error {
	return keyboard.Close()
}
