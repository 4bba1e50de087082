// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/osteo-vault/internal/crypto"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/models"
)

// dummySalt feeds the derivation that runs when Unlock finds no vault.
var dummySalt = make([]byte, crypto.SaltSize)

// LockOptions configures a LockService.
type LockOptions struct {
	// InactivityTimeout locks the vault after this much idle time. Zero
	// disables the timeout.
	InactivityTimeout time.Duration
	// Clock defaults to SystemClock.
	Clock Clock

	// The fields below are only reported through State.
	DemoMode       bool
	Degraded       bool
	DegradedReason string
}

type lockService struct {
	repo     store.VaultRepository
	keyChain crypto.KeyChainService
	opts     LockOptions
	clock    Clock

	// setupMu serializes Configure and Replace.
	setupMu sync.Mutex

	mu         sync.RWMutex
	key        *crypto.SecretKey
	configured bool

	lastActivity atomic.Int64

	subMu       sync.Mutex
	subscribers []func(models.LockEvent)

	logger *logger.Logger
}

// NewLockService creates a locked LockService over repo.
func NewLockService(repo store.VaultRepository, keyChain crypto.KeyChainService, opts LockOptions, logger *logger.Logger) LockService {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	return &lockService{
		repo:     repo,
		keyChain: keyChain,
		opts:     opts,
		clock:    opts.Clock,
		logger:   logger,
	}
}

func (s *lockService) Configure(ctx context.Context, credential string) error {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return err
	}

	s.setupMu.Lock()
	defer s.setupMu.Unlock()

	_, err := s.repo.GetMeta(ctx)
	switch {
	case err == nil:
		return ErrVaultAlreadyConfigured
	case !errors.Is(err, store.ErrMetaNotFound):
		log.Err(err).Str("func", "lockService.Configure").Msg("failed to read vault meta")
		return fmt.Errorf("read vault meta: %w", err)
	}

	salt, err := s.keyChain.GenerateSalt()
	if err != nil {
		return err
	}
	key, err := s.keyChain.DeriveKey(credential, salt)
	if err != nil {
		return err
	}

	canary, nonce, err := s.keyChain.Seal(key, crypto.CanaryPlaintext, crypto.CanaryAAD)
	if err != nil {
		key.Destroy()
		return fmt.Errorf("seal canary: %w", err)
	}

	meta := models.VaultMeta{
		Salt:             salt,
		FormatVersion:    models.VaultFormatVersion,
		CanaryCiphertext: canary,
		CanaryNonce:      nonce,
		KDF:              s.keyChain.Params(),
		CreatedAt:        s.clock.Now().UTC(),
	}
	if err := s.repo.SaveMeta(ctx, meta); err != nil {
		key.Destroy()
		log.Err(err).Str("func", "lockService.Configure").Msg("failed to save vault meta")
		return fmt.Errorf("save vault meta: %w", err)
	}

	s.install(key, models.ReasonConfigured)
	s.logger.Info().Str("func", "lockService.Configure").Msg("vault configured")
	return nil
}

func (s *lockService) Unlock(ctx context.Context, credential string) (bool, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s.IsUnlocked() {
		return false, ErrAlreadyUnlocked
	}

	meta, err := s.repo.GetMeta(ctx)
	if errors.Is(err, store.ErrMetaNotFound) {
		key, err := s.keyChain.DeriveKey(credential, dummySalt)
		if err != nil {
			return false, err
		}
		key.Destroy()
		s.logger.Info().Str("func", "lockService.Unlock").Msg("unlock rejected")
		return false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "lockService.Unlock").Msg("failed to read vault meta")
		return false, fmt.Errorf("read vault meta: %w", err)
	}

	params := meta.KDF
	if params == (models.KDFParams{}) {
		params = s.keyChain.Params()
	}
	key, err := s.keyChain.DeriveKeyWithParams(credential, meta.Salt, params)
	if err != nil {
		return false, err
	}

	if _, err := s.keyChain.Open(key, meta.CanaryCiphertext, meta.CanaryNonce, crypto.CanaryAAD); err != nil {
		key.Destroy()
		s.logger.Info().Str("func", "lockService.Unlock").Msg("unlock rejected")
		return false, nil
	}

	s.mu.Lock()
	if s.key != nil {
		s.mu.Unlock()
		key.Destroy()
		return false, ErrAlreadyUnlocked
	}
	s.lastActivity.Store(s.clock.Now().UnixNano())
	s.key = key
	s.configured = true
	s.mu.Unlock()

	s.notify(models.Unlocked, models.ReasonUnlocked)
	s.logger.Info().Str("func", "lockService.Unlock").Msg("vault unlocked")
	return true, nil
}

// install makes key the session key, destroying any previous one.
func (s *lockService) install(key *crypto.SecretKey, reason models.LockReason) {
	s.mu.Lock()
	old := s.key
	s.lastActivity.Store(s.clock.Now().UnixNano())
	s.key = key
	s.configured = true
	s.mu.Unlock()

	if old != key {
		old.Destroy()
	}
	s.notify(models.Unlocked, reason)
}

func (s *lockService) Lock() {
	s.lockWithReason(models.ReasonManual)
}

func (s *lockService) Logout() {
	s.lockWithReason(models.ReasonLogout)
}

func (s *lockService) lockWithReason(reason models.LockReason) bool {
	s.mu.Lock()
	if s.key == nil {
		s.mu.Unlock()
		return false
	}
	s.key.Destroy()
	s.key = nil
	s.mu.Unlock()

	s.notify(models.Locked, reason)
	s.logger.Info().Str("func", "lockService.lock").Str("reason", string(reason)).Msg("vault locked")
	return true
}

func (s *lockService) IsUnlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key != nil
}

func (s *lockService) State() models.LockStatus {
	s.mu.RLock()
	unlocked, configured := s.key != nil, s.configured
	s.mu.RUnlock()

	st := models.LockStatus{
		State:             models.Locked,
		Configured:        configured,
		InactivityTimeout: s.opts.InactivityTimeout,
		Degraded:          s.opts.Degraded,
		DegradedReason:    s.opts.DegradedReason,
		DemoMode:          s.opts.DemoMode,
	}
	if unlocked {
		st.State = models.Unlocked
		st.LastActivity = time.Unix(0, s.lastActivity.Load()).UTC()
	}
	st.StateName = st.State.String()
	return st
}

func (s *lockService) Configured(ctx context.Context) (bool, error) {
	_, err := s.repo.GetMeta(ctx)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrMetaNotFound):
		return false, nil
	default:
		return false, err
	}

	s.mu.Lock()
	s.configured = true
	s.mu.Unlock()
	return true, nil
}

func (s *lockService) Touch() {
	s.lastActivity.Store(s.clock.Now().UnixNano())
}

func (s *lockService) CheckInactivity() bool {
	if s.opts.InactivityTimeout <= 0 {
		return false
	}

	s.mu.Lock()
	if s.key == nil {
		s.mu.Unlock()
		return false
	}
	idle := s.clock.Now().Sub(time.Unix(0, s.lastActivity.Load()))
	if idle < s.opts.InactivityTimeout {
		s.mu.Unlock()
		return false
	}
	s.key.Destroy()
	s.key = nil
	s.mu.Unlock()

	s.notify(models.Locked, models.ReasonInactivity)
	s.logger.Info().
		Str("func", "lockService.CheckInactivity").
		Dur("idle", idle).
		Msg("vault locked after inactivity")
	return true
}

func (s *lockService) Subscribe(fn func(models.LockEvent)) {
	if fn == nil {
		return
	}
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *lockService) notify(state models.LockState, reason models.LockReason) {
	s.subMu.Lock()
	subs := make([]func(models.LockEvent), len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()

	ev := models.LockEvent{State: state, Reason: reason, At: s.clock.Now().UTC()}
	for _, fn := range subs {
		fn(ev)
	}
}

func (s *lockService) WithKey(fn func(key *crypto.SecretKey) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.key == nil {
		return ErrVaultLocked
	}
	s.Touch()
	return fn(s.key)
}

func (s *lockService) Replace(ctx context.Context, key *crypto.SecretKey, apply func(ctx context.Context) error) error {
	s.setupMu.Lock()
	defer s.setupMu.Unlock()

	s.mu.Lock()
	if s.key == nil {
		_, err := s.repo.GetMeta(ctx)
		if err == nil {
			s.mu.Unlock()
			key.Destroy()
			return ErrVaultLocked
		}
		if !errors.Is(err, store.ErrMetaNotFound) {
			s.mu.Unlock()
			key.Destroy()
			return fmt.Errorf("read vault meta: %w", err)
		}
	}

	if err := apply(ctx); err != nil {
		s.mu.Unlock()
		key.Destroy()
		return err
	}

	old := s.key
	s.lastActivity.Store(s.clock.Now().UnixNano())
	s.key = key
	s.configured = true
	s.mu.Unlock()

	if old != key {
		old.Destroy()
	}
	s.notify(models.Unlocked, models.ReasonRestored)
	return nil
}
