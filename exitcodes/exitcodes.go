// Package exitcodes defines the standard exit codes used by qa-acceptor.
package exitcodes

// Exit code constants used by qa-acceptor
// These constants define the exit codes that the application uses to indicate
// various states when it exits:
//
// * Success (0): All categories passed, or only non-critical categories failed
//   (unless --fail-on-noncritical is set)
// * CriticalFailure (1): One or more critical categories failed
// * RuntimeErr (2): Runtime errors such as missing prerequisites, bad
//   configuration or artifact write failures
const (
	Success         = 0
	CriticalFailure = 1
	RuntimeErr      = 2
)
