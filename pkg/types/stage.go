package types

// Stage is one unit of the post-install pipeline. A stage instance is bound
// to its host context, diagnostic sink and options when it is constructed.
type Stage interface {
	// Init prepares the stage. A non-nil error means the environment cannot
	// support the stage and the rest of the plan must not run.
	Init() error

	// Process performs the stage's work. Problems are reported to the
	// diagnostic sink by the stage itself; the returned error is only recorded.
	Process() error
}

// StageSpec names a stage implementation and the options it is built with.
type StageSpec struct {
	ID      string
	Options Metadata
}

// String returns the stage identifier.
func (s StageSpec) String() string {
	return s.ID
}
