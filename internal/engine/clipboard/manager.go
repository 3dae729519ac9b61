package clipboard

import (
	"sync"

	sysclip "github.com/atotto/clipboard"

	"github.com/dshills/bytestorm/internal/engine/codec"
)

// Manager holds the session clipboard and mirrors copies out to the system
// clipboard. The internal copy is authoritative: system clipboard failures
// (headless environments, missing clipboard tooling) never lose the bytes.
type Manager struct {
	mu    sync.Mutex
	data  []byte
	limit int

	writeSystem func(string) error
	readSystem  func() (string, error)
}

// Option configures a Manager.
type Option func(*Manager)

// WithPayloadLimit overrides the encoded payload size limit.
func WithPayloadLimit(limit int) Option {
	return func(m *Manager) {
		m.limit = limit
	}
}

// WithSystemWriter replaces the system clipboard write. Front ends that
// deliver only via escape sequences can pass a no-op.
func WithSystemWriter(write func(string) error) Option {
	return func(m *Manager) {
		if write != nil {
			m.writeSystem = write
		}
	}
}

// WithSystemReader replaces the system clipboard read.
func WithSystemReader(read func() (string, error)) Option {
	return func(m *Manager) {
		if read != nil {
			m.readSystem = read
		}
	}
}

// NewManager creates a clipboard manager with the default payload limit.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		limit:       DefaultPayloadLimit,
		writeSystem: sysclip.WriteAll,
		readSystem:  sysclip.ReadAll,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Copy stores bytes in the session clipboard and pushes their hex rendering
// to the system clipboard. The returned error reports only the system
// delivery; the session copy always succeeds.
func (m *Manager) Copy(b []byte, f HexFormat) error {
	m.mu.Lock()
	m.data = append(m.data[:0:0], b...)
	write := m.writeSystem
	m.mu.Unlock()

	return write(FormatHex(b, f))
}

// Bytes returns a copy of the session clipboard content.
func (m *Manager) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// Payload returns the base64 payload for the session clipboard content, for
// escape-sequence delivery by the front end.
func (m *Manager) Payload() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.data) == 0 {
		return "", ErrEmptyClipboard
	}
	return ExportPayload(m.data, m.limit)
}

// Paste reads the system clipboard, falling back to the session copy when
// the system clipboard is unavailable or empty, and classifies the text to
// bytes using the active encoding.
func (m *Manager) Paste(enc codec.Encoding) ([]byte, PasteKind, error) {
	m.mu.Lock()
	read := m.readSystem
	local := append([]byte(nil), m.data...)
	m.mu.Unlock()

	text, err := read()
	if err != nil || text == "" {
		if len(local) == 0 {
			return nil, PasteText, ErrEmptyClipboard
		}
		return local, PasteHex, nil
	}
	return ClassifyPaste(text, enc)
}
