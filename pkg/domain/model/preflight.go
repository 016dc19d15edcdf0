package model

// PreflightCheck is the result of a single read-only precondition check.
type PreflightCheck struct {
	Name   string
	OK     bool
	Detail string
}

// PreflightReport collects check results in execution order. Checks stop at
// the first failure, so at most the last entry can be failing.
type PreflightReport struct {
	Checks []PreflightCheck
}

// Failed returns the failing check, or nil if every recorded check passed.
func (x *PreflightReport) Failed() *PreflightCheck {
	for i := range x.Checks {
		if !x.Checks[i].OK {
			return &x.Checks[i]
		}
	}
	return nil
}
