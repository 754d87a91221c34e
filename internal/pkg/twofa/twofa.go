/*
Package twofa manages short-lived email verification codes for the two-factor
sign-in step.

Codes live in memory with a fixed expiry. A background goroutine periodically
removes expired entries so the map cannot grow without bound.
*/
package twofa

import (
	"sync"
	"time"

	"pongarena/internal/pkg/logx"
	"pongarena/internal/pkg/randx"
)

const (
	// CodeTTL is the validity window of an issued code.
	CodeTTL = 5 * time.Minute

	// MaxAttempts is the number of wrong guesses allowed before the pending
	// code is discarded.
	MaxAttempts = 5

	// cleanupInterval is how often expired entries are swept.
	cleanupInterval = time.Minute
)

// pendingCode is one outstanding challenge keyed by the account email.
type pendingCode struct {
	code      string
	expiresAt time.Time
	attempts  int
}

// Manager issues and verifies two-factor email codes. It is concurrent-safe.
type Manager struct {
	mu    sync.Mutex
	codes map[string]*pendingCode

	done chan struct{}
	once sync.Once
}

// NewManager creates a Manager and starts its cleanup goroutine.
func NewManager() *Manager {
	m := &Manager{
		codes: make(map[string]*pendingCode),
		done:  make(chan struct{}),
	}

	go m.cleanupExpired()

	return m
}

// Issue generates a fresh code for the given email, replacing any pending one.
// The code is returned so the caller can deliver it via the mail sender.
func (m *Manager) Issue(email string) (string, error) {
	code, err := randx.TwoFACode()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.codes[email] = &pendingCode{
		code:      code,
		expiresAt: time.Now().Add(CodeTTL),
	}
	m.mu.Unlock()

	return code, nil
}

// Verify checks the presented code. A correct code is consumed; a wrong one
// burns an attempt, and the challenge is discarded after MaxAttempts or expiry.
func (m *Manager) Verify(email, code string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	pending, ok := m.codes[email]
	if !ok {
		return false
	}

	if time.Now().After(pending.expiresAt) {
		delete(m.codes, email)
		return false
	}

	if pending.code != code {
		pending.attempts++
		if pending.attempts >= MaxAttempts {
			delete(m.codes, email)
		}
		return false
	}

	delete(m.codes, email)
	return true
}

// cleanupExpired sweeps expired challenges until Shutdown is called.
func (m *Manager) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			now := time.Now()

			m.mu.Lock()
			removed := 0
			for email, pending := range m.codes {
				if now.After(pending.expiresAt) {
					delete(m.codes, email)
					removed++
				}
			}
			remaining := len(m.codes)
			m.mu.Unlock()

			if removed > 0 {
				logx.Info("2FA code cleanup finished", "removed", removed, "remaining", remaining)
			}
		}
	}
}

// Shutdown stops the cleanup goroutine.
func (m *Manager) Shutdown() {
	m.once.Do(func() { close(m.done) })
}
