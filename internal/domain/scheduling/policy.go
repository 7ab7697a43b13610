package scheduling

import (
	"time"

	"github.com/advisorkit/scheduler/internal/httperr"
)

// ===============================
// Link Policy Evaluator
// ===============================

type Decision string

const (
	Admit                 Decision = "admit"
	DenyExpired           Decision = "deny_expired"
	DenyUsageLimitReached Decision = "deny_usage_limit_reached"
)

// LinkPolicy is the admission policy carried by a scheduling link. Both
// bounds are optional; a zero policy admits everything.
type LinkPolicy struct {
	UsageLimit *int
	ExpiresAt  *time.Time
}

// Evaluate resolves the policy against a usage count. Expiration is checked
// before the usage cap, and the decision is independent of which slot the
// visitor picked. The listing path runs this advisorily; the booking
// transaction re-runs it with a freshly counted total, because time elapses
// between listing and commit.
func Evaluate(p LinkPolicy, currentUsage int64, now time.Time) Decision {
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return DenyExpired
	}

	if p.UsageLimit != nil && currentUsage >= int64(*p.UsageLimit) {
		return DenyUsageLimitReached
	}

	return Admit
}

// Err maps a deny decision onto the engine's rejection taxonomy. Admit maps
// to nil.
func (d Decision) Err() error {
	switch d {
	case DenyExpired:
		return httperr.ErrBusiness(httperr.CodeLinkExpired)
	case DenyUsageLimitReached:
		return httperr.ErrBusiness(httperr.CodeUsageLimitReached)
	default:
		return nil
	}
}
