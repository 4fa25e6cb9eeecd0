// Package audio manages background music for the menu and game
// screens: one track per screen, switched on navigation, with a mute
// toggle and clamped volume. Playback itself is delegated to an
// injected Player so the package stays testable without an audio
// device.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
)

// Track identifies a background music track.
type Track string

const (
	// TrackMenu plays on the menu and configuration screens.
	TrackMenu Track = "menu"

	// TrackGame plays during an active quiz round.
	TrackGame Track = "game"
)

// DefaultVolume is the volume applied when none is configured.
const DefaultVolume = 0.5

// Player is the playback backend. Implementations are expected to loop
// the track until stopped.
type Player interface {
	// Play starts looping the track at the given volume, replacing
	// whatever was playing.
	Play(track Track, volume float64) error

	// Stop halts playback.
	Stop() error

	// SetVolume adjusts the volume of the current track.
	SetVolume(volume float64) error

	// Close releases the backend. No method may be called after Close.
	Close() error
}

// NopPlayer is a playback backend that does nothing. Used when no
// audio device is available, keeping the Manager wiring identical.
type NopPlayer struct{}

func (NopPlayer) Play(Track, float64) error { return nil }
func (NopPlayer) Stop() error               { return nil }
func (NopPlayer) SetVolume(float64) error   { return nil }
func (NopPlayer) Close() error              { return nil }

// Manager owns the process-wide audio state. All methods are safe for
// concurrent use. A nil Manager is valid and does nothing, so callers
// running with audio disabled need no branching.
type Manager struct {
	mu      sync.Mutex
	player  Player
	logger  *slog.Logger
	current Track
	volume  float64
	muted   bool
	closed  bool
}

// NewManager creates a Manager over the playback backend.
// Panics if player is nil.
func NewManager(player Player, logger *slog.Logger) *Manager {
	if player == nil {
		panic("player cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		player: player,
		logger: logger.With(slog.String("component", "audio")),
		volume: DefaultVolume,
	}
}

// Switch starts the track for the given screen. Switching to the track
// already playing is a no-op, so screen transitions can call this
// unconditionally.
func (m *Manager) Switch(track Track) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("audio manager is closed")
	}
	if m.current == track {
		return nil
	}

	m.current = track
	if m.muted {
		return nil
	}
	if err := m.player.Play(track, m.volume); err != nil {
		return fmt.Errorf("play track %q: %w", track, err)
	}
	m.logger.Debug("switched track", slog.String("track", string(track)))
	return nil
}

// SetVolume sets the playback volume, clamping the value to [0, 1].
func (m *Manager) SetVolume(volume float64) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.volume = clamp(volume)
	if m.closed || m.muted || m.current == "" {
		return nil
	}
	if err := m.player.SetVolume(m.volume); err != nil {
		return fmt.Errorf("set volume: %w", err)
	}
	return nil
}

// Volume returns the configured volume, whether or not muted.
func (m *Manager) Volume() float64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// ToggleMute flips the mute state and returns the new state. Muting
// stops playback; unmuting resumes the current track.
func (m *Manager) ToggleMute() (bool, error) {
	if m == nil {
		return true, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return m.muted, fmt.Errorf("audio manager is closed")
	}

	m.muted = !m.muted
	if m.muted {
		if err := m.player.Stop(); err != nil {
			return m.muted, fmt.Errorf("stop on mute: %w", err)
		}
		return true, nil
	}
	if m.current != "" {
		if err := m.player.Play(m.current, m.volume); err != nil {
			return false, fmt.Errorf("resume on unmute: %w", err)
		}
	}
	return false, nil
}

// Muted reports whether audio is muted.
func (m *Manager) Muted() bool {
	if m == nil {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// Close stops playback and releases the backend. Subsequent calls are
// no-ops.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	if err := m.player.Close(); err != nil {
		return fmt.Errorf("close audio backend: %w", err)
	}
	return nil
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
