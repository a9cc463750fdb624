package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/proofmine/proofmine-console/pkg/logging"
	"github.com/proofmine/proofmine-console/pkg/types"
)

// ErrNotReady means the manager has not completed Init, or no provider
// environment is reachable and no session is persisted
var ErrNotReady = errors.New("wallet manager is not ready")

// ErrProviderUnavailable means the wallet provider cannot be reached
var ErrProviderUnavailable = errors.New("wallet provider unavailable")

// Config holds the configuration for the wallet manager
type Config struct {
	AuthURL        string
	EnvironmentID  string
	ConnectTimeout time.Duration
}

// Manager is the single wallet adapter for the console. It owns the
// session lifecycle end to end: loading it at startup, connecting through
// the provider's browser page, and disconnecting locally.
type Manager struct {
	logger   logging.Logger
	config   Config
	store    *Store
	provider *ProviderClient

	mu         sync.RWMutex
	ready      bool
	descriptor *EnvironmentDescriptor
	session    *Session
}

// NewManager creates a wallet manager
func NewManager(logger logging.Logger, cfg Config, store *Store, provider *ProviderClient) (*Manager, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if provider == nil {
		return nil, fmt.Errorf("provider client cannot be nil")
	}
	if cfg.AuthURL == "" {
		return nil, fmt.Errorf("auth URL cannot be empty")
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 2 * time.Minute
	}

	return &Manager{
		logger:   logger,
		config:   cfg,
		store:    store,
		provider: provider,
	}, nil
}

// Init loads the persisted session and probes the provider environment.
// The manager becomes ready when a valid session exists or the provider
// answered; a valid session keeps the console usable while the provider is
// down. Init never fails the whole command over wallet problems.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.store.Load()
	switch {
	case err == nil:
		if session.IsValid() {
			m.session = session
			m.logger.Debugf("Restored wallet session for %s", session.WalletAddress)
		} else {
			m.logger.Warnf("Persisted wallet session expired, discarding")
			if err := m.store.Clear(); err != nil {
				m.logger.Warnf("Failed to clear expired session: %v", err)
			}
		}
	case errors.Is(err, ErrNoSession):
		// Nothing persisted, stay disconnected.
	default:
		m.logger.Warnf("Discarding unreadable wallet session: %v", err)
		if err := m.store.Clear(); err != nil {
			m.logger.Warnf("Failed to clear unreadable session: %v", err)
		}
	}

	if m.config.EnvironmentID != "" {
		descriptor, err := m.provider.Descriptor(ctx, m.config.EnvironmentID)
		if err != nil {
			m.logger.Warnf("Wallet provider unreachable: %v", err)
		} else {
			m.descriptor = descriptor
		}
	}

	m.ready = m.session != nil || m.descriptor != nil
	return nil
}

// Connect runs the browser connect flow: it starts a loopback callback
// server, hands the hosted connect URL to announce for display, and waits
// for the provider page to deliver the session token. Connecting while
// already connected returns the current session.
func (m *Manager) Connect(ctx context.Context, announce func(connectURL string)) (*Session, error) {
	if existing := m.Session(); existing != nil {
		m.logger.Debugf("Wallet %s already connected", existing.WalletAddress)
		return existing, nil
	}

	if m.config.EnvironmentID == "" {
		return nil, fmt.Errorf("WALLET_ENVIRONMENT_ID is not configured")
	}

	descriptor, err := m.ensureDescriptor(ctx)
	if err != nil {
		return nil, err
	}

	state := uuid.New().String()
	callback, err := NewCallbackServer(m.logger, m.config.AuthURL, state)
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}
	callback.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := callback.Shutdown(shutdownCtx); err != nil {
			m.logger.Warnf("Callback server shutdown: %v", err)
		}
	}()

	connectURL := m.provider.ConnectURL(descriptor, m.config.EnvironmentID, callback.RedirectURI(), state)
	if announce != nil {
		announce(connectURL)
	}

	waitCtx, cancel := context.WithTimeout(ctx, m.config.ConnectTimeout)
	defer cancel()

	token, err := callback.WaitForToken(waitCtx)
	if err != nil {
		return nil, err
	}

	claims, err := DecodeSessionToken(token)
	if err != nil {
		return nil, fmt.Errorf("provider returned an unusable token: %w", err)
	}

	session := &Session{
		WalletAddress: ChecksumAddress(claims.Subject),
		Email:         claims.Email,
		Username:      claims.Username,
		EnvironmentID: claims.EnvironmentID,
		AuthToken:     token,
		ConnectedAt:   time.Now().UTC(),
	}
	if session.EnvironmentID == "" {
		session.EnvironmentID = m.config.EnvironmentID
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	if err := m.store.Save(session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.session = session
	m.ready = true
	m.mu.Unlock()

	m.logger.Infof("Wallet %s connected as %s", session.WalletAddress, session.DisplayName())
	return session, nil
}

// Disconnect deletes the persisted session and clears in-memory state. It
// is local only and idempotent; the provider is never called.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		m.logger.Debug("Disconnect with no active session")
	} else {
		m.logger.Infof("Disconnecting wallet %s", m.session.WalletAddress)
	}

	if err := m.store.Clear(); err != nil {
		return err
	}
	m.session = nil
	return nil
}

// ensureDescriptor returns the environment descriptor, fetching it if Init
// could not
func (m *Manager) ensureDescriptor(ctx context.Context) (*EnvironmentDescriptor, error) {
	m.mu.RLock()
	descriptor := m.descriptor
	m.mu.RUnlock()
	if descriptor != nil {
		return descriptor, nil
	}

	descriptor, err := m.provider.Descriptor(ctx, m.config.EnvironmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	m.mu.Lock()
	m.descriptor = descriptor
	m.ready = true
	m.mu.Unlock()
	return descriptor, nil
}

// IsReady reports whether wallet-dependent commands may run
func (m *Manager) IsReady() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// IsConnected reports whether a wallet session is active
func (m *Manager) IsConnected() bool {
	return m.Session() != nil
}

// Address returns the connected wallet address, or empty
func (m *Manager) Address() string {
	if session := m.Session(); session != nil {
		return session.WalletAddress
	}
	return ""
}

// Email returns the connected user's email, or empty
func (m *Manager) Email() string {
	if session := m.Session(); session != nil {
		return session.Email
	}
	return ""
}

// Username returns the display name for the connected user, or empty
func (m *Manager) Username() string {
	if session := m.Session(); session != nil {
		return session.DisplayName()
	}
	return ""
}

// Session returns a copy of the active session, or nil. Expiry is checked
// on every read so a session that lapses mid-run drops out.
func (m *Manager) Session() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.session == nil || !m.session.IsValid() {
		return nil
	}
	copied := *m.session
	return &copied
}

// DefaultUsernameFor exposes the backend's username fallback for display
func DefaultUsernameFor(address string) string {
	return types.DefaultUsername(address)
}
