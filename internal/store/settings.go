package store

import (
	"encoding/json"
	"time"

	"github.com/sadopc/studydesk/internal/storage"
)

const settingsKey = "studydesk-settings"

type settingsEnvelope struct {
	Version int           `json:"version"`
	Timer   TimerSettings `json:"timer"`
}

// SettingsStore owns the timer configuration. Missing or unreadable state
// falls back to the default pomodoro durations.
type SettingsStore struct {
	kv    storage.KV
	timer TimerSettings
}

// NewSettingsStore hydrates settings from storage, defaulting when the key
// is absent.
func NewSettingsStore(kv storage.KV) *SettingsStore {
	s := &SettingsStore{kv: kv, timer: DefaultTimerSettings()}
	if raw, ok := kv.Get(settingsKey); ok {
		var env settingsEnvelope
		if err := json.Unmarshal([]byte(raw), &env); err == nil && env.Timer.FocusSeconds > 0 {
			s.timer = env.Timer
		}
	}
	return s
}

// Timer returns the current timer configuration.
func (s *SettingsStore) Timer() TimerSettings {
	return s.timer
}

// SetTimer replaces the timer configuration and persists it.
func (s *SettingsStore) SetTimer(t TimerSettings) {
	s.timer = t
	s.persist()
}

// FocusDuration is the configured focus interval length.
func (s *SettingsStore) FocusDuration() time.Duration {
	return time.Duration(s.timer.FocusSeconds) * time.Second
}

// ShortBreakDuration is the configured short-break length.
func (s *SettingsStore) ShortBreakDuration() time.Duration {
	return time.Duration(s.timer.ShortBreakSeconds) * time.Second
}

// LongBreakDuration is the configured long-break length.
func (s *SettingsStore) LongBreakDuration() time.Duration {
	return time.Duration(s.timer.LongBreakSeconds) * time.Second
}

func (s *SettingsStore) persist() {
	b, _ := json.Marshal(settingsEnvelope{Version: 1, Timer: s.timer})
	s.kv.Set(settingsKey, string(b))
}
