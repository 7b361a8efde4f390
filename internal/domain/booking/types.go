package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ActiveStatuses are the statuses that occupy a property's calendar.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

type PaymentStatus string

// PayoutEligible reports whether a booking in these statuses can be paid out
// to its host: the stay is over and the guest's payment has settled.
func PayoutEligible(s Status, p PaymentStatus) bool {
	return s == StatusCompleted && p == PaymentCompleted
}

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentPartial   PaymentStatus = "partial"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentRefunded, PaymentPartial:
		return true
	default:
		return false
	}
}

type Transition string

const (
	TransitionAccept   Transition = "accept"
	TransitionDecline  Transition = "decline"
	TransitionCancel   Transition = "cancel"
	TransitionComplete Transition = "complete"
)

func (t Transition) String() string {
	return string(t)
}

// transitions lists the legal source states and the target of every transition.
var transitions = map[Transition]struct {
	from []Status
	to   Status
}{
	TransitionAccept:   {from: []Status{StatusPending}, to: StatusConfirmed},
	TransitionDecline:  {from: []Status{StatusPending}, to: StatusCancelled},
	TransitionCancel:   {from: []Status{StatusPending, StatusConfirmed}, to: StatusCancelled},
	TransitionComplete: {from: []Status{StatusConfirmed}, to: StatusCompleted},
}

func (t Transition) AllowedFrom(s Status) bool {
	rule, ok := transitions[t]
	if !ok {
		return false
	}
	for _, from := range rule.from {
		if from == s {
			return true
		}
	}
	return false
}

func (t Transition) Target() Status {
	return transitions[t].to
}
