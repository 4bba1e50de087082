// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// LockState is the process-wide state of the encrypted vault.
type LockState int

const (
	// Locked is the initial state; no session key is held in memory.
	Locked LockState = iota
	// Unlocked means a session key derived from the user credential is held.
	Unlocked
)

// String implements [fmt.Stringer].
func (s LockState) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// LockReason tells subscribers why a transition happened.
type LockReason string

const (
	ReasonConfigured LockReason = "configured"
	ReasonUnlocked   LockReason = "unlocked"
	ReasonManual     LockReason = "manual"
	ReasonInactivity LockReason = "inactivity"
	ReasonLogout     LockReason = "logout"
	ReasonRestored   LockReason = "restored"
)

// LockEvent is delivered to lock-state subscribers after every transition.
type LockEvent struct {
	State  LockState
	Reason LockReason
	At     time.Time
}

// LockStatus is a point-in-time snapshot of the lock state machine, safe to
// expose to callers (it carries no key material).
type LockStatus struct {
	State             LockState     `json:"-"`
	StateName         string        `json:"state"`
	Configured        bool          `json:"configured"`
	LastActivity      time.Time     `json:"last_activity,omitzero"`
	InactivityTimeout time.Duration `json:"inactivity_timeout"`
	Degraded          bool          `json:"degraded"`
	DegradedReason    string        `json:"degraded_reason,omitempty"`
	DemoMode          bool          `json:"demo_mode"`
}
