package services

// NotAvailable is shown for the missing side of a displayed field pair.
const NotAvailable = "N/A"

type fieldSpec struct {
	Label string
	value func(Quotation) Text
}

type fieldPair struct {
	Left, Right fieldSpec
}

var (
	fieldPackets          = fieldSpec{"No. of Packets", func(q Quotation) Text { return q.NumberOfPackets }}
	fieldWeight           = fieldSpec{"Weight", func(q Quotation) Text { return q.Weight }}
	fieldCargoSize        = fieldSpec{"Cargo Size", Quotation.CargoSizeValue}
	fieldVolumeWeight     = fieldSpec{"Volume Weight", func(q Quotation) Text { return q.VolumeWeight }}
	fieldChargeableWeight = fieldSpec{"Chargeable Weight", func(q Quotation) Text { return q.ChargeableWeight }}
	fieldCommodity        = fieldSpec{"Commodity", func(q Quotation) Text { return q.Commodity }}
	fieldTerms            = fieldSpec{"Terms", func(q Quotation) Text { return q.Terms }}
	fieldEquipment        = fieldSpec{"Equipment", func(q Quotation) Text { return q.Equipment }}
	fieldCBM              = fieldSpec{"CBM", func(q Quotation) Text { return q.CBM }}
	fieldServiceJobType   = fieldSpec{"Service Job Type", func(q Quotation) Text { return q.ServiceJobType }}
	fieldAirportDeparture = fieldSpec{"Airport of Departure", func(q Quotation) Text { return q.AirPortOfDeparture }}
	fieldAirportDest      = fieldSpec{"Airport of Destination", func(q Quotation) Text { return q.AirPortOfDestination }}
	fieldAirlines         = fieldSpec{"Airlines", func(q Quotation) Text { return q.AirLines }}
	fieldPOR              = fieldSpec{"POR", func(q Quotation) Text { return q.POR }}
	fieldPOL              = fieldSpec{"POL", func(q Quotation) Text { return q.POL }}
	fieldPOD              = fieldSpec{"POD", func(q Quotation) Text { return q.POD }}
	fieldFinalDestination = fieldSpec{"Final Destination", func(q Quotation) Text { return q.FinalDestination }}
	fieldRailRamp         = fieldSpec{"Rail Ramp", func(q Quotation) Text { return q.RailRamp }}
	fieldShippingLine     = fieldSpec{"Shipping Line", func(q Quotation) Text { return q.ShippingLine }}
	fieldTransitTime      = fieldSpec{"Transit Time", func(q Quotation) Text { return q.TransitTime }}
	fieldETD              = fieldSpec{"ETD", func(q Quotation) Text { return q.ETD }}
	fieldETA              = fieldSpec{"ETA", func(q Quotation) Text { return q.ETA }}
)

// segmentFieldPairs lists, per segment kind, the shipment detail pairs in
// display order. Adding a segment means adding an entry here.
var segmentFieldPairs = map[SegmentKind][]fieldPair{
	SegmentAir: {
		{fieldPackets, fieldWeight},
		{fieldCargoSize, fieldVolumeWeight},
		{fieldChargeableWeight, fieldCommodity},
		{fieldTerms, fieldAirlines},
		{fieldAirportDeparture, fieldAirportDest},
		{fieldETD, fieldETA},
	},
	SegmentFCL: {
		{fieldEquipment, fieldWeight},
		{fieldCommodity, fieldTerms},
		{fieldPOR, fieldPOL},
		{fieldPOD, fieldFinalDestination},
		{fieldShippingLine, fieldTransitTime},
		{fieldETD, fieldETA},
	},
	SegmentLCLBreakBulk: {
		{fieldPackets, fieldWeight},
		{fieldCBM, fieldCommodity},
		{fieldCargoSize, fieldTerms},
		{fieldPOR, fieldPOL},
		{fieldPOD, fieldFinalDestination},
		{fieldShippingLine, fieldTransitTime},
		{fieldETD, fieldETA},
	},
	SegmentServiceJob: {
		{fieldServiceJobType, fieldTerms},
		{fieldPackets, fieldWeight},
		{fieldCommodity, fieldCBM},
		{fieldPOR, fieldFinalDestination},
		{fieldRailRamp, fieldTransitTime},
	},
	SegmentGeneric: {
		{fieldPackets, fieldWeight},
		{fieldCargoSize, fieldVolumeWeight},
		{fieldChargeableWeight, fieldCBM},
		{fieldCommodity, fieldTerms},
		{fieldEquipment, fieldServiceJobType},
		{fieldAirportDeparture, fieldAirportDest},
		{fieldAirlines, fieldShippingLine},
		{fieldPOR, fieldPOL},
		{fieldPOD, fieldFinalDestination},
		{fieldRailRamp, fieldTransitTime},
		{fieldETD, fieldETA},
	},
}

// DisplayField is one labelled value ready for display.
type DisplayField struct {
	Label string
	Value string
}

// FieldRow is a two-column row of the shipment details section.
type FieldRow struct {
	Left  DisplayField
	Right DisplayField
}

// ResolveFieldRows returns the shipment detail rows for a segment kind.
// A row is kept when at least one side has a value; the empty side reads
// NotAvailable.
func ResolveFieldRows(kind SegmentKind, q Quotation) []FieldRow {
	pairs, ok := segmentFieldPairs[kind]
	if !ok {
		pairs = segmentFieldPairs[SegmentGeneric]
	}

	var rows []FieldRow
	for _, p := range pairs {
		left := p.Left.value(q)
		right := p.Right.value(q)
		if left.Empty() && right.Empty() {
			continue
		}
		rows = append(rows, FieldRow{
			Left:  DisplayField{Label: p.Left.Label, Value: orNA(left)},
			Right: DisplayField{Label: p.Right.Label, Value: orNA(right)},
		})
	}
	return rows
}

// ResolveFields is the single-column variant used by the detail view.
func ResolveFields(kind SegmentKind, q Quotation) []DisplayField {
	rows := ResolveFieldRows(kind, q)
	fields := make([]DisplayField, 0, len(rows)*2)
	for _, r := range rows {
		fields = append(fields, r.Left, r.Right)
	}
	return fields
}

func orNA(t Text) string {
	if t.Empty() {
		return NotAvailable
	}
	return t.String()
}
