// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package metronome provides poll-driven periodic timers. A Timer never runs on
its own goroutine. Instead, an owner polls it, and the Timer invokes its callback
at most once per period of clock time.

Time comes from either the wall clock or a logical clock whose value is published
by the surrounding framework, so simulation, playback, and live operation all
use the same timer code.

A Node owns a collection of timers, publishes logical time to them, and polls them
from its spin loop. Closing a Node disposes every timer it owns. Provide binds a
Node to an fx application's lifecycle.
*/
package metronome
