// Package pim implements self-service activation of eligible directory
// roles: listing eligibility, classifying active grants, and submitting
// time-boxed activation requests.
package pim

import (
	"fmt"
	"math"
	"time"

	"entractl/internal/domain"
)

// ExpiryKind classifies how an active assignment ends.
type ExpiryKind string

const (
	// ExpiryPermanent marks a standing assignment that never expires.
	ExpiryPermanent ExpiryKind = "permanent"
	// ExpiryAt marks a time-boxed assignment with a known end time.
	ExpiryAt ExpiryKind = "expires-at"
	// ExpiryUnknown marks an assignment whose end the service did not report.
	ExpiryUnknown ExpiryKind = "unknown"
)

// Expiry is the classified expiration of an active assignment.
type Expiry struct {
	Kind        ExpiryKind
	At          time.Time
	MinutesLeft int
}

// Classify derives the expiry of an active assignment schedule.
// A standing assignment with no expiration is permanent; an
// after-date-time expiration with a present end yields the end time and
// rounded minutes remaining (negative when already past); anything else
// is unknown.
func Classify(s domain.AssignmentSchedule, now time.Time) Expiry {
	exp := s.Expiration()
	if s.AssignmentType == domain.AssignmentTypeAssigned && exp.Type == domain.ExpirationNone {
		return Expiry{Kind: ExpiryPermanent}
	}
	if exp.Type == domain.ExpirationAfterDateTime && exp.EndDateTime != nil {
		end := *exp.EndDateTime
		minutes := int(math.Round(end.Sub(now).Minutes()))
		return Expiry{Kind: ExpiryAt, At: end, MinutesLeft: minutes}
	}
	return Expiry{Kind: ExpiryUnknown}
}

// String renders the expiry for the interactive listing.
func (e Expiry) String() string {
	switch e.Kind {
	case ExpiryPermanent:
		return "permanent"
	case ExpiryAt:
		return fmt.Sprintf("expires %s (%d min left)", e.At.UTC().Format(time.RFC3339), e.MinutesLeft)
	default:
		return "expiry unknown"
	}
}
