package services

import "strings"

// SegmentKind is the rendering class of a quotation segment label.
type SegmentKind int

const (
	SegmentGeneric SegmentKind = iota
	SegmentAir
	SegmentFCL
	SegmentLCLBreakBulk
	SegmentServiceJob
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentAir:
		return "Air"
	case SegmentFCL:
		return "FCL"
	case SegmentLCLBreakBulk:
		return "LCL/Break Bulk"
	case SegmentServiceJob:
		return "Service Job"
	default:
		return "Generic"
	}
}

// Classify maps a free-text segment label to a SegmentKind.
// Checks run in a fixed order and the first match wins, so "Air FCL"
// classifies as Air. Service Job needs an exact match; the others match
// on substrings.
func Classify(label string) SegmentKind {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case l == "":
		return SegmentGeneric
	case l == "service job":
		return SegmentServiceJob
	case strings.Contains(l, "air"):
		return SegmentAir
	case strings.Contains(l, "fcl"):
		return SegmentFCL
	case strings.Contains(l, "lcl"), strings.Contains(l, "break bulk"):
		return SegmentLCLBreakBulk
	default:
		return SegmentGeneric
	}
}
