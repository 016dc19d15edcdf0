package model

// WorkflowRun identifies a CI run correlated to a pushed tag.
type WorkflowRun struct {
	ID         int64
	HeadBranch string
	URL        string
}

// Conclusion is the terminal outcome of a completed workflow run. It is an
// opaque string compared only for equality with the success value.
type Conclusion string

const (
	ConclusionSuccess   Conclusion = "success"
	ConclusionFailure   Conclusion = "failure"
	ConclusionCancelled Conclusion = "cancelled"
)

// Success reports whether the conclusion is exactly the success value.
func (x Conclusion) Success() bool {
	return x == ConclusionSuccess
}
