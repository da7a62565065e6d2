// Package exitcode exports par2mirror's exit status numbers.
package exitcode

const (
	// Success is returned when the command finished without error. A verify
	// run that found damaged files still succeeds.
	Success = iota
	// UsageError is returned when there was a syntax or usage error in the arguments.
	UsageError
	// UncategorizedError is returned for any error not categorised otherwise.
	UncategorizedError
)

// SourceNotFound is returned when SOURCEDIR does not exist.
const SourceNotFound = 51
