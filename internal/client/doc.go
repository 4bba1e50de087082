// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the local vault, the remote adapter, the terminal UI and the
// inactivity lock worker into a single process lifecycle.
package client
