// Package bits defines the atomic data unit of a diagnostic report: a
// fixed-width, most-significant-bit-first sequence of binary digits.
//
// # Data model
//
//   - Bit – two-valued symbol, Zero or One. No other values exist.
//   - Sequence – immutable ordered run of Bits. Width is fixed at
//     construction; the zero Sequence has width 0 and is not a valid report
//     entry.
//
// Digit parsing (BitFromDigit, ParseSequence) rejects anything other than
// '0' and '1'. Decimal interprets a Sequence as an unsigned big-endian
// integer and is the terminal step of every computation in internal/analysis.
//
// The error sentinels shared by all analysis packages live here as well, so
// that the leaf package owns the taxonomy and higher layers only wrap it.
package bits
