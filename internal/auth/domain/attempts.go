package domain

// MaxLoginAttempts is the number of consecutive failures after which the
// reported attempt counter bottoms out at zero.
const MaxLoginAttempts = 3

// AttemptState classifies a user's consecutive-failure streak. The exhausted
// state is tracked and reported but deliberately not enforced as a lockout;
// only a successful login leaves it.
type AttemptState int

const (
	AttemptNormal AttemptState = iota
	AttemptWarned
	AttemptExhausted
)

func (u *User) AttemptState() AttemptState {
	switch {
	case u.LoginAttempts == 0:
		return AttemptNormal
	case u.LoginAttempts < MaxLoginAttempts:
		return AttemptWarned
	default:
		return AttemptExhausted
	}
}

// AttemptsLeft returns the countdown reported to the client after one more
// failure on top of the given streak. Never negative.
func AttemptsLeft(failed int) int {
	left := MaxLoginAttempts - (failed + 1)
	if left < 0 {
		return 0
	}
	return left
}
