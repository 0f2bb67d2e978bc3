package audio

import (
	"time"
)

// Player plays the music track of a stage
type Player interface {
	// Load decodes the track, replacing any loaded one
	Load(file string) error

	// Play starts the track from offset
	Play(offset time.Duration) error
	Stop()
	Playing() bool

	// Length of the loaded track
	Length() time.Duration
	Close()
}
