package leader

import (
	"math"
	"math/rand"
	"time"
)

// Backoff computes the jittered exponential reconnect delay for the
// given retryCount (already incremented for the attempt about to be
// scheduled, so retryCount is always >= 1 when this is called — see
// §9's note on why the "1.5^(retryCount-1)" multiplier is defined only
// from retryCount=1 onward):
//
//	D = min(maxDelay, baseDelay * 1.5^(retryCount-1) + U(0, 1000ms))
func Backoff(retryCount int, baseDelay, maxDelay time.Duration) time.Duration {
	growth := math.Pow(1.5, float64(retryCount-1))
	jitter := time.Duration(rand.Float64() * float64(time.Millisecond) * 1000)
	d := time.Duration(float64(baseDelay)*growth) + jitter
	if d > maxDelay {
		return maxDelay
	}
	return d
}

// InitialJitter returns a uniform random delay in [0, max) used to
// spread the very first connect attempt across many simultaneously
// starting clients, reducing the odds any one of them draws the leader
// election.
func InitialJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(max)))
}
