package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Ошибки содержимого отчёта
	RepEmpty         Code = 1001
	RepWidthMismatch Code = 1002
	RepInvalidDigit  Code = 1003
	RepOverflow      Code = 1004
	RepMalformedLine Code = 1005

	// Ошибки фильтра рейтингов
	RatAmbiguous Code = 2001
	RatEmptied   Code = 2002

	IOLoadFailed  Code = 3001
	IOCacheFailed Code = 3002

	InvCheckFailed Code = 4001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:      "Unknown error",
		RepEmpty:         "Empty report",
		RepWidthMismatch: "Sequence width mismatch",
		RepInvalidDigit:  "Invalid binary digit",
		RepOverflow:      "Value overflows 64 bits",
		RepMalformedLine: "Malformed line",
		RatAmbiguous:     "Ambiguous report",
		RatEmptied:       "Candidate set emptied",
		IOLoadFailed:     "Failed to load file",
		IOCacheFailed:    "Result cache failure",
		InvCheckFailed:   "Invariant check failed",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("REP%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("RAT%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("INV%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
