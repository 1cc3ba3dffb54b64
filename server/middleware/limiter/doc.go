// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter is a middleware that rate limits login attempts per client.

Each client network gets its own token bucket. Buckets live in an expiring
cache, so clients that stop sending requests are forgotten after the
configured TTL.
*/
package limiter
