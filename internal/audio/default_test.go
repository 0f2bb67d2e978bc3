package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var supportedTests = map[string]bool{
	"song.mp3":      true,
	"song.OGG":      true,
	"dir/song.wav":  true,
	"song.flac":     false,
	"song":          false,
	"song.mp3.part": false,
}

func TestSupported(t *testing.T) {
	for file, expected := range supportedTests {
		if Supported(file) != expected {
			t.Errorf("%v: expected %v", file, expected)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	p := &DefaultPlayer{}
	err := p.Load(filepath.Join(t.TempDir(), "missing.mp3"))
	var notFound *ResourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected a resource error, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("resource error does not wrap the cause")
	}
}

func TestLoadUnsupported(t *testing.T) {
	p := &DefaultPlayer{}
	if err := p.Load("track.flac"); nil == err {
		t.Error("expected an error")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "track.ogg"), []byte{}, 0o644); nil != err {
		t.Fatal(err)
	}
	file, err := Resolve(dir, "track.ogg")
	if nil != err || file != filepath.Join(dir, "track.ogg") {
		t.Errorf("resolved %v %v", file, err)
	}
	_, err = Resolve(dir, "other.ogg")
	var notFound *ResourceNotFoundError
	if !errors.As(err, &notFound) || notFound.Path != filepath.Join(dir, "other.ogg") {
		t.Errorf("expected a resource error, got %v", err)
	}
}

func TestUnloadedPlayer(t *testing.T) {
	p := &DefaultPlayer{}
	if p.Length() != 0 || p.Playing() {
		t.Fail()
	}
	if err := p.Play(time.Second); nil == err {
		t.Error("played without a track")
	}
	p.Stop()
	p.Close()
}
