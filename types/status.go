package types

import "strings"

// ConfirmationStatus is the commitment a transaction has reached.
type ConfirmationStatus int

const (
	ConfirmationNone ConfirmationStatus = iota
	ConfirmationProcessed
	ConfirmationConfirmed
	ConfirmationFinalized
)

func (s ConfirmationStatus) String() string {
	switch s {
	case ConfirmationProcessed:
		return "processed"
	case ConfirmationConfirmed:
		return "confirmed"
	case ConfirmationFinalized:
		return "finalized"
	default:
		return "none"
	}
}

// AtLeast reports whether s is as durable as other.
func (s ConfirmationStatus) AtLeast(other ConfirmationStatus) bool {
	return s >= other
}

// ParseConfirmationStatus maps an RPC confirmation or commitment string.
// Unknown values map to ConfirmationNone.
func ParseConfirmationStatus(v string) ConfirmationStatus {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "processed", "recent":
		return ConfirmationProcessed
	case "confirmed", "single", "singlegossip":
		return ConfirmationConfirmed
	case "finalized", "max", "root":
		return ConfirmationFinalized
	default:
		return ConfirmationNone
	}
}

// Outcome is the result of racing confirmation strategies.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeConfirmed
	OutcomeExpired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeExpired:
		return "expired"
	default:
		return "unknown"
	}
}
