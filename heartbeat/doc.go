// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package heartbeat keeps a consul TTL check alive using a metronome Timer. The
Timer is owned by a metronome.Node, so the check is updated whenever the node
spins and the period has elapsed.
*/
package heartbeat
