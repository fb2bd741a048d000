// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/moodboard/internal/dispatch"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/players"
)

// FakePlayer is a test double for [players.Player] that records every command.
type FakePlayer struct {
	Calls      []string
	FailPlay   bool
	FailMute   bool
	PanicMute  bool
	PanicPause bool
}

func (p *FakePlayer) Play() error {
	p.Calls = append(p.Calls, "play")
	if p.FailPlay {
		return errors.New("play rejected")
	}
	return nil
}

func (p *FakePlayer) Pause() error {
	p.Calls = append(p.Calls, "pause")
	if p.PanicPause {
		panic("player detached")
	}
	return nil
}

func (p *FakePlayer) Mute() error {
	p.Calls = append(p.Calls, "mute")
	if p.PanicMute {
		panic("player detached")
	}
	if p.FailMute {
		return errors.New("mute rejected")
	}
	return nil
}

// Count returns how many times cmd was called.
func (p *FakePlayer) Count(cmd string) int {
	n := 0
	for _, c := range p.Calls {
		if c == cmd {
			n++
		}
	}
	return n
}

// FakeBackend is a test double for [players.Backend]. Players are created on
// demand but only report ready when the test calls [FakeBackend.Ready].
type FakeBackend struct {
	available atomic.Bool
	mu        sync.Mutex
	created   []models.MountPoint
	pending   map[models.MountPoint]func(players.Player)
	Players   map[models.MountPoint]*FakePlayer
	FailNew   bool
}

// NewFakeBackend creates a [FakeBackend] whose API is already loaded when available is true.
func NewFakeBackend(available bool) *FakeBackend {
	b := &FakeBackend{
		pending: make(map[models.MountPoint]func(players.Player)),
		Players: make(map[models.MountPoint]*FakePlayer),
	}
	b.available.Store(available)
	return b
}

func (b *FakeBackend) SetAvailable(v bool) { b.available.Store(v) }

func (b *FakeBackend) Available() bool { return b.available.Load() }

func (b *FakeBackend) NewPlayer(mp models.MountPoint, _ string, ready func(players.Player)) error {
	if b.FailNew {
		return errors.New("player construction failed")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, mp)
	b.pending[mp] = ready
	b.Players[mp] = &FakePlayer{}
	return nil
}

// Created returns the mount points a player was constructed for.
func (b *FakeBackend) Created() []models.MountPoint {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.MountPoint, len(b.created))
	copy(out, b.created)
	return out
}

// Ready fires the ready callback for mp and returns its player, or nil when
// no player was constructed there.
func (b *FakeBackend) Ready(mp models.MountPoint) *FakePlayer {
	b.mu.Lock()
	ready, ok := b.pending[mp]
	p := b.Players[mp]
	b.mu.Unlock()
	if !ok {
		return nil
	}
	ready(p)
	return p
}

// RecordingInjector collects injected scripts.
type RecordingInjector struct {
	Scripts []players.Script
}

func (r *RecordingInjector) InjectScript(s players.Script) { r.Scripts = append(r.Scripts, s) }

// DrainUntil drains q until cond holds or timeout elapses.
func DrainUntil(t *testing.T, q *dispatch.Queue, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		q.Drain()
		if cond() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met within %v", timeout)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
