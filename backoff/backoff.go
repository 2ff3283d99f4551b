// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package backoff

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Policy implements a backoff policy, randomizing its delays
// and saturating at the final value in Millis.
type Policy struct {
	Millis []int
}

// FiveSec is a backoff policy ranging up to 5 seconds.
var FiveSec = Policy{
	Millis: []int{500, 750, 1000, 1500, 2000, 2500, 3000, 3500, 4000, 4500, 5000},
}

// Duration returns the time duration of the n'th wait cycle in a
// backoff policy. This is b.Millis[n], randomized to avoid thundering
// herds.
func (b Policy) Duration(n int) time.Duration {
	if len(b.Millis) == 0 {
		return 0
	}

	if n >= len(b.Millis) {
		n = len(b.Millis) - 1
	}

	return time.Duration(jitter(b.Millis[n])) * time.Millisecond
}

// Sleep sleeps for the duration of the n'th wait cycle
// in a way that can be interrupted by the context.  An error is returned
// if the context cancels the sleep
func (b Policy) Sleep(ctx context.Context, n int) error {
	timer := time.NewTimer(b.Duration(n))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sleep interrupted by context: %w", ctx.Err())
	}
}

// Retry calls cb until it succeeds, returns an error retry rejects or retries
// additional attempts were made. The last error from cb is returned.
func (b Policy) Retry(ctx context.Context, retries int, retry func(error) bool, cb func(try int) error) error {
	for try := 0; ; try++ {
		err := cb(try)
		if err == nil || try >= retries || !retry(err) {
			return err
		}

		if b.Sleep(ctx, try) != nil {
			return err
		}
	}
}

// jitter returns a random integer uniformly distributed in the range
// [0.5 * millis .. 1.5 * millis]
func jitter(millis int) int {
	if millis == 0 {
		return 0
	}

	return millis/2 + rand.Intn(millis)
}
