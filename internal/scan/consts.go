package scan

// Reference run parameters.
const (
	DefaultDemoStart       = 27
	DefaultInitialCapacity = 16
	DefaultRecordHistory   = 8
)

// Report window.
const (
	windowSize = 4
)
