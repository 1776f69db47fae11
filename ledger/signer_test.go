package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZigZeron/CosmoWallet/types"
)

type fakeTransport struct {
	mu      sync.Mutex
	timeout time.Duration
	closed  bool
}

func (t *fakeTransport) SetExchangeTimeout(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout = d
}

func (t *fakeTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *fakeTransport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

type fakeFactory struct {
	mu         sync.Mutex
	err        error
	opens      int
	transports []*fakeTransport
}

func (f *fakeFactory) open(context.Context) (Transport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens++
	if f.err != nil {
		return nil, f.err
	}
	tr := &fakeTransport{}
	f.transports = append(f.transports, tr)
	return tr, nil
}

func (f *fakeFactory) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

type fakeApp struct {
	address string
	pubKey  []byte
	sig     []byte
	err     error
}

func (a *fakeApp) GetAddressAndPubKey(path []uint32, hrp string) (string, []byte, error) {
	if a.err != nil {
		return "", nil, a.err
	}
	return a.address, a.pubKey, nil
}

func (a *fakeApp) SignSecp256k1(path []uint32, signBytes []byte) ([]byte, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.sig, nil
}

func appFactory(app DeviceApp) AppFactory {
	return func(Transport) (DeviceApp, error) { return app, nil }
}

// 33-byte compressed secp256k1 point so pubkey types stay well-formed.
func testPubKey() []byte {
	pk := make([]byte, 33)
	pk[0] = 0x02
	return pk
}

func TestSessionManagerReusesSession(t *testing.T) {
	factory := &fakeFactory{}
	m, err := NewSessionManager(factory.open, nil)
	require.NoError(t, err)

	first, err := m.Acquire(context.Background())
	require.NoError(t, err)
	second, err := m.Acquire(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, factory.openCount())
	assert.True(t, m.Connected())
	assert.NotZero(t, factory.transports[0].timeout, "exchange timeout must be set on open")
}

func TestSessionManagerInvalidateClosesAndReopens(t *testing.T) {
	factory := &fakeFactory{}
	m, err := NewSessionManager(factory.open, nil)
	require.NoError(t, err)

	_, err = m.Acquire(context.Background())
	require.NoError(t, err)

	m.Invalidate()
	assert.False(t, m.Connected())
	assert.True(t, factory.transports[0].isClosed())

	_, err = m.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, factory.openCount(), "next acquire performs a fresh handshake")
}

func TestSessionManagerHandshakeFailure(t *testing.T) {
	t.Run("generic failure collapses to connect error", func(t *testing.T) {
		factory := &fakeFactory{err: errors.New("usb timeout")}
		m, err := NewSessionManager(factory.open, nil)
		require.NoError(t, err)

		_, err = m.Acquire(context.Background())
		assert.Same(t, ErrConnectFailed, err)
	})

	t.Run("hid and busy errors pass through", func(t *testing.T) {
		factory := &fakeFactory{err: errors.New("hidapi: not available")}
		m, err := NewSessionManager(factory.open, nil)
		require.NoError(t, err)

		_, err = m.Acquire(context.Background())
		assert.Same(t, ErrHIDUnsupported, err)

		factory.err = errors.New("The device is already open")
		_, err = m.Acquire(context.Background())
		assert.Same(t, ErrConnectedOnAnotherTab, err)
	})
}

func TestSignerIsHardware(t *testing.T) {
	m, err := NewSessionManager((&fakeFactory{}).open, nil)
	require.NoError(t, err)
	s, err := NewSigner(m, appFactory(&fakeApp{}), nil, "cosmos", nil)
	require.NoError(t, err)

	assert.True(t, s.Hardware())
}

func TestSignerRejectsDirectMode(t *testing.T) {
	factory := &fakeFactory{}
	m, err := NewSessionManager(factory.open, nil)
	require.NoError(t, err)
	s, err := NewSigner(m, appFactory(&fakeApp{}), nil, "cosmos", nil)
	require.NoError(t, err)

	_, err = s.Sign(context.Background(), signingtypes.SignMode_SIGN_MODE_DIRECT, []byte("doc"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnsupportedSignMode)
	assert.Zero(t, factory.openCount(), "mode check happens before touching the device")
}

func TestSignerSignsAminoDocs(t *testing.T) {
	m, err := NewSessionManager((&fakeFactory{}).open, nil)
	require.NoError(t, err)
	app := &fakeApp{sig: []byte("signature")}
	s, err := NewSigner(m, appFactory(app), nil, "cosmos", nil)
	require.NoError(t, err)

	sig, err := s.Sign(context.Background(), signingtypes.SignMode_SIGN_MODE_LEGACY_AMINO_JSON, []byte("doc"))
	require.NoError(t, err)
	assert.Equal(t, []byte("signature"), sig)
	assert.True(t, m.Connected(), "successful sign keeps the session alive")
}

func TestSignerFailureInvalidatesSession(t *testing.T) {
	factory := &fakeFactory{}
	m, err := NewSessionManager(factory.open, nil)
	require.NoError(t, err)
	app := &fakeApp{err: errors.New("DisconnectedDeviceDuringOperation")}
	s, err := NewSigner(m, appFactory(app), nil, "cosmos", nil)
	require.NoError(t, err)

	_, err = s.Sign(context.Background(), signingtypes.SignMode_SIGN_MODE_LEGACY_AMINO_JSON, []byte("doc"))
	require.Error(t, err)
	assert.Equal(t, ErrDeviceDisconnected.Error(), err.Error())

	assert.False(t, m.Connected(), "broken session must be dropped")
	assert.True(t, factory.transports[0].isClosed())

	// Recovery: the device comes back, the next call opens a new session.
	app.err = nil
	app.sig = []byte("sig2")
	sig, err := s.Sign(context.Background(), signingtypes.SignMode_SIGN_MODE_LEGACY_AMINO_JSON, []byte("doc"))
	require.NoError(t, err)
	assert.Equal(t, []byte("sig2"), sig)
	assert.Equal(t, 2, factory.openCount())
}

func TestSignerAccount(t *testing.T) {
	m, err := NewSessionManager((&fakeFactory{}).open, nil)
	require.NoError(t, err)
	app := &fakeApp{address: "cosmos1abc", pubKey: testPubKey()}
	s, err := NewSigner(m, appFactory(app), nil, "cosmos", nil)
	require.NoError(t, err)

	acct, err := s.Account(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cosmos1abc", acct.Address)
	require.NotNil(t, acct.PubKey)
}

func TestImportAccountsDerivesPerChainAddresses(t *testing.T) {
	factory := &fakeFactory{}
	m, err := NewSessionManager(factory.open, nil)
	require.NoError(t, err)
	app := &fakeApp{address: "cosmos1abc", pubKey: testPubKey()}
	s, err := NewSigner(m, appFactory(app), nil, "cosmos", nil)
	require.NoError(t, err)

	byChain, err := s.ImportAccounts(context.Background(), nil, map[string]string{
		"cosmos":  "cosmos",
		"osmosis": "osmo",
	})
	require.NoError(t, err)

	require.Len(t, byChain["cosmos"], 4, "default import covers the first four indexes")
	require.Len(t, byChain["osmosis"], 4)

	assert.Contains(t, byChain["cosmos"][0].Address, "cosmos1")
	assert.Contains(t, byChain["osmosis"][0].Address, "osmo1")

	// Same key material, different prefixes: the payloads must agree.
	assert.Equal(t,
		byChain["cosmos"][0].PubKey.Bytes(),
		byChain["osmosis"][0].PubKey.Bytes(),
	)

	assert.False(t, m.Connected(), "import is one-shot and releases the device")
}

func TestDerivationPath(t *testing.T) {
	assert.Equal(t, []uint32{44, 118, 0, 0, 0}, DerivationPath(0))
	assert.Equal(t, []uint32{44, 118, 0, 0, 7}, DerivationPath(7))
}
