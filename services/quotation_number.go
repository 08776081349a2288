package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QuotationNumber is a parsed PREFIX-YYYYMM-NNNN quotation number.
type QuotationNumber struct {
	Prefix   string
	Year     int
	Month    time.Month
	Sequence int
}

// ParseQuotationNumber splits a quotation number into its parts. Numbers
// are issued by the quotation API and treated as opaque keys everywhere
// else; this is only used to show the quotation period.
func ParseQuotationNumber(s string) (QuotationNumber, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) < 3 {
		return QuotationNumber{}, fmt.Errorf("quotation number %q: want PREFIX-YYYYMM-NNNN", s)
	}

	seqPart := parts[len(parts)-1]
	periodPart := parts[len(parts)-2]
	prefix := strings.Join(parts[:len(parts)-2], "-")
	if prefix == "" {
		return QuotationNumber{}, fmt.Errorf("quotation number %q: empty prefix", s)
	}

	if len(periodPart) != 6 {
		return QuotationNumber{}, fmt.Errorf("quotation number %q: period %q is not YYYYMM", s, periodPart)
	}
	year, err := strconv.Atoi(periodPart[:4])
	if err != nil {
		return QuotationNumber{}, fmt.Errorf("quotation number %q: bad year: %w", s, err)
	}
	month, err := strconv.Atoi(periodPart[4:])
	if err != nil || month < 1 || month > 12 {
		return QuotationNumber{}, fmt.Errorf("quotation number %q: bad month %q", s, periodPart[4:])
	}

	seq, err := strconv.Atoi(seqPart)
	if err != nil || seq < 0 {
		return QuotationNumber{}, fmt.Errorf("quotation number %q: bad sequence %q", s, seqPart)
	}

	return QuotationNumber{
		Prefix:   prefix,
		Year:     year,
		Month:    time.Month(month),
		Sequence: seq,
	}, nil
}

// Period returns "June 2024" for QT-202406-0001.
func (n QuotationNumber) Period() string {
	return fmt.Sprintf("%s %d", n.Month, n.Year)
}

// String rebuilds the number with a four digit sequence.
func (n QuotationNumber) String() string {
	return fmt.Sprintf("%s-%04d%02d-%04d", n.Prefix, n.Year, int(n.Month), n.Sequence)
}
