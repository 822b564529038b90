package linkparse

import (
	"strings"

	perr "nexuproxy/internal/platform/errors"
)

// Defaults for the secret repair heuristic. Both are properties of the
// upstream data source rather than the algorithm, so keep them tunable
const (
	// DefaultSentinel is the padding character whose trailing runs trigger repair
	DefaultSentinel = 'A'
	// DefaultThreshold is the original-length cutoff above which a trailing
	// sentinel run marks the whole secret as corrupted
	DefaultThreshold = 60
)

// SecretHeuristic repairs or rejects suspect secrets. Secrets are opaque
// variable-length tokens; some transports pad short ones with a fixed
// character, but a long token ending in that character is more likely
// genuinely corrupted than padded, so it is dropped rather than mutated
type SecretHeuristic struct {
	Sentinel  byte
	Threshold int
}

// NewSecretHeuristic returns a heuristic with the default sentinel and threshold
func NewSecretHeuristic() SecretHeuristic {
	return SecretHeuristic{Sentinel: DefaultSentinel, Threshold: DefaultThreshold}
}

// Repair applies the trailing-sentinel heuristic to an optional secret.
// nil and empty secrets pass through unchanged. A non-nil result shares the
// optionality of the input; a Heuristic error means the link must be skipped
func (h SecretHeuristic) Repair(secret *string) (*string, error) {
	if secret == nil || *secret == "" {
		return secret, nil
	}

	s := *secret
	trimmed := strings.TrimRight(s, string(h.Sentinel))

	if trimmed == "" {
		// the whole secret is padding; nothing real underneath
		return nil, perr.Heuristicf("secret is all sentinel characters")
	}
	k := len(s) - len(trimmed)
	if k == 0 {
		return secret, nil
	}

	// the cutoff applies to the original length, not the trimmed one
	if len(s) >= h.Threshold {
		return nil, perr.Heuristicf("long secret (%d chars) with %d trailing sentinels", len(s), k)
	}
	return &trimmed, nil
}
