package services

import (
	"fmt"
	"net/url"
	"strings"
)

// ChargeTable names a charge table in edit forms and validation errors.
type ChargeTable string

const (
	TableOrigin      ChargeTable = "originCharges"
	TableFreight     ChargeTable = "freightCharges"
	TableDestination ChargeTable = "destinationCharges"
)

// ChargeTables lists the tables in display order.
var ChargeTables = []ChargeTable{TableOrigin, TableFreight, TableDestination}

// Title returns the table heading.
func (t ChargeTable) Title() string {
	switch t {
	case TableOrigin:
		return originChargesTitle
	case TableFreight:
		return freightChargesTitle
	default:
		return destinationChargeTitle
	}
}

// DefaultUnit returns the unit applied to rows without one.
func (t ChargeTable) DefaultUnit() string {
	if t == TableFreight {
		return UnitPerContainer
	}
	return UnitPerShipment
}

// Rows returns the quotation's rows for the table.
func (t ChargeTable) Rows(q Quotation) []Charge {
	switch t {
	case TableOrigin:
		return q.OriginCharges
	case TableFreight:
		return q.FreightCharges
	default:
		return q.DestinationCharges
	}
}

func (t ChargeTable) set(q *Quotation, rows []Charge) {
	switch t {
	case TableOrigin:
		q.OriginCharges = rows
	case TableFreight:
		q.FreightCharges = rows
	default:
		q.DestinationCharges = rows
	}
}

// ChargeFieldName is the form field for one cell of a charge row,
// e.g. "freightCharges.0.amount".
func ChargeFieldName(t ChargeTable, row int, field string) string {
	return fmt.Sprintf("%s.%d.%s", t, row, field)
}

// EditableField is a scalar attribute offered on the edit form.
type EditableField struct {
	Key       string
	Label     string
	Multiline bool
	ref       func(*Quotation) *Text
}

// Value returns the field's current value on q.
func (f EditableField) Value(q Quotation) string {
	return string(*f.ref(&q))
}

// EditableFields lists the scalar attributes in form order. Keys are the
// API attribute names.
var EditableFields = []EditableField{
	{"customerName", "Customer", true, func(q *Quotation) *Text { return &q.CustomerName }},
	{"consigneeName", "Consignee", true, func(q *Quotation) *Text { return &q.ConsigneeName }},
	{"numberOfPackets", fieldPackets.Label, false, func(q *Quotation) *Text { return &q.NumberOfPackets }},
	{"weight", fieldWeight.Label, false, func(q *Quotation) *Text { return &q.Weight }},
	{"cargoSize", fieldCargoSize.Label, false, func(q *Quotation) *Text { return &q.CargoSize }},
	{"volumeWeight", fieldVolumeWeight.Label, false, func(q *Quotation) *Text { return &q.VolumeWeight }},
	{"chargeableWeight", fieldChargeableWeight.Label, false, func(q *Quotation) *Text { return &q.ChargeableWeight }},
	{"commodity", fieldCommodity.Label, false, func(q *Quotation) *Text { return &q.Commodity }},
	{"terms", fieldTerms.Label, false, func(q *Quotation) *Text { return &q.Terms }},
	{"equipment", fieldEquipment.Label, false, func(q *Quotation) *Text { return &q.Equipment }},
	{"cbm", fieldCBM.Label, false, func(q *Quotation) *Text { return &q.CBM }},
	{"serviceJobType", fieldServiceJobType.Label, false, func(q *Quotation) *Text { return &q.ServiceJobType }},
	{"airPortOfDeparture", fieldAirportDeparture.Label, false, func(q *Quotation) *Text { return &q.AirPortOfDeparture }},
	{"airPortOfDestination", fieldAirportDest.Label, false, func(q *Quotation) *Text { return &q.AirPortOfDestination }},
	{"airLines", fieldAirlines.Label, false, func(q *Quotation) *Text { return &q.AirLines }},
	{"por", fieldPOR.Label, false, func(q *Quotation) *Text { return &q.POR }},
	{"pol", fieldPOL.Label, false, func(q *Quotation) *Text { return &q.POL }},
	{"pod", fieldPOD.Label, false, func(q *Quotation) *Text { return &q.POD }},
	{"finalDestination", fieldFinalDestination.Label, false, func(q *Quotation) *Text { return &q.FinalDestination }},
	{"railRamp", fieldRailRamp.Label, false, func(q *Quotation) *Text { return &q.RailRamp }},
	{"shippingLine", fieldShippingLine.Label, false, func(q *Quotation) *Text { return &q.ShippingLine }},
	{"transitTime", fieldTransitTime.Label, false, func(q *Quotation) *Text { return &q.TransitTime }},
	{"etd", fieldETD.Label, false, func(q *Quotation) *Text { return &q.ETD }},
	{"eta", fieldETA.Label, false, func(q *Quotation) *Text { return &q.ETA }},
	{"remarks", "Remarks", true, func(q *Quotation) *Text { return &q.Remarks }},
}

var chargeCells = []string{"charges", "currency", "amount", "unit"}

// ApplyForm stages the edits in form onto a copy of q. Only fields present
// in the form are changed. Charge tables present in the form replace the
// quotation's rows; blank rows are dropped. The staged copy is returned
// even when validation fails so the form can be re-rendered as typed.
func ApplyForm(q Quotation, form url.Values) (Quotation, []ValidationError) {
	staged := q.Clone()
	var errs []ValidationError

	if id, ok := formValue(form, "id"); ok && id != q.ID {
		errs = append(errs, ValidationError{Field: "id", Message: "Quotation number cannot be changed"})
	}

	if seg, ok := formValue(form, "quotationSegment"); ok {
		staged.Segment = seg
	}
	if strings.TrimSpace(staged.Segment) == "" {
		errs = append(errs, ValidationError{Field: "quotationSegment", Message: "Segment is required"})
	}

	for _, f := range EditableFields {
		if v, ok := formValue(form, f.Key); ok {
			*f.ref(&staged) = Text(v)
		}
	}

	for _, table := range ChargeTables {
		rows, present := chargeRowsFromForm(form, table)
		if !present {
			continue
		}
		for i, r := range rows {
			if r.Amount.Empty() {
				continue
			}
			if _, ok := ParseAmount(r.Amount.String()); !ok {
				errs = append(errs, ValidationError{
					Row:     i + 1,
					Field:   string(table) + ".amount",
					Message: fmt.Sprintf("%s row %d: amount %q is not a number", table.Title(), i+1, r.Amount.String()),
				})
			}
		}
		table.set(&staged, rows)
	}

	if _, ok := form["termsAndConditions"]; ok {
		var terms []string
		for _, line := range strings.Split(form.Get("termsAndConditions"), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				terms = append(terms, line)
			}
		}
		staged.TermsAndConditions = terms
	}

	return staged, errs
}

func formValue(form url.Values, key string) (string, bool) {
	vals, ok := form[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return strings.TrimSpace(vals[0]), true
}

// chargeRowsFromForm reads rows 0..n of a table until a row index has no
// cells in the form. present is false when the form carries no row and no
// "{table}.count" marker at all.
func chargeRowsFromForm(form url.Values, table ChargeTable) (rows []Charge, present bool) {
	_, present = form[string(table)+".count"]
	for i := 0; ; i++ {
		found := false
		var c Charge
		for _, cell := range chargeCells {
			v, ok := formValue(form, ChargeFieldName(table, i, cell))
			if !ok {
				continue
			}
			found = true
			switch cell {
			case "charges":
				c.Charges = Text(v)
			case "currency":
				c.Currency = Text(v)
			case "amount":
				c.Amount = Text(v)
			case "unit":
				c.Unit = Text(v)
			}
		}
		if !found {
			break
		}
		present = true
		if c.Present() {
			rows = append(rows, c)
		}
	}
	return rows, present
}
