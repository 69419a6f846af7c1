package testrunner

// Status classifies a finished test run.
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusNoTests
	StatusTimedOut
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusNoTests:
		return "no tests collected"
	case StatusTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// TestResult is the classified outcome of one test command.
type TestResult struct {
	Command   []string
	Status    Status
	ExitCode  int
	Stdout    string
	Stderr    string
	Truncated bool
}
