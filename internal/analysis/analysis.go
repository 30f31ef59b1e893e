// Package analysis computes the two headline figures of a diagnostic report:
// power consumption and life-support rating.
package analysis
