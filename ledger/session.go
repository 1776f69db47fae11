package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ZigZeron/CosmoWallet/constants"
)

// Transport is one open channel to a hardware device. The concrete
// implementation (USB HID, speculos, mock) lives outside this module.
type Transport interface {
	// SetExchangeTimeout bounds a single APDU round trip
	SetExchangeTimeout(d time.Duration)
	Close() error
}

// TransportFactory opens a fresh device channel, performing the handshake.
type TransportFactory func(ctx context.Context) (Transport, error)

// SessionManager owns the single live device session. The session is reused
// across signing calls and invalidated on any device error so the next call
// performs a fresh handshake instead of reusing a broken channel. Only one
// session may be open at a time; concurrent acquires serialize.
type SessionManager struct {
	mu      sync.Mutex
	factory TransportFactory
	timeout time.Duration
	logger  *zap.Logger
	session Transport
}

// NewSessionManager creates a manager around the transport factory.
func NewSessionManager(factory TransportFactory, logger *zap.Logger) (*SessionManager, error) {
	if factory == nil {
		return nil, fmt.Errorf("transport factory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		factory: factory,
		timeout: constants.LedgerExchangeTimeout,
		logger:  logger.Named("ledger"),
	}, nil
}

// Acquire returns the live session, opening one if none exists.
func (m *SessionManager) Acquire(ctx context.Context) (Transport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return m.session, nil
	}

	transport, err := m.factory(ctx)
	if err != nil {
		mapped := MapError(err)
		if mapped == ErrHIDUnsupported || mapped == ErrConnectedOnAnotherTab {
			return nil, mapped
		}
		m.logger.Warn("device handshake failed", zap.Error(err))
		return nil, ErrConnectFailed
	}
	transport.SetExchangeTimeout(m.timeout)
	m.session = transport
	m.logger.Debug("device session opened")
	return transport, nil
}

// Invalidate closes and forgets the live session, if any. Safe to call when
// no session is open.
func (m *SessionManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return
	}
	if err := m.session.Close(); err != nil {
		m.logger.Debug("closing broken session", zap.Error(err))
	}
	m.session = nil
}

// Connected reports whether a live session exists.
func (m *SessionManager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}
