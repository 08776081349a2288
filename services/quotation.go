package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Text is a scalar quotation attribute. The quotation API is not consistent
// about types, so a Text accepts JSON strings, numbers, booleans and null.
type Text string

// UnmarshalJSON decodes strings verbatim and keeps the literal form of
// numbers and booleans ("1200", "12.5", "true"). Null decodes to "".
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case '{', '[':
		return fmt.Errorf("quotation: expected scalar value, got %s", string(b[:1]))
	default:
		*t = Text(string(b))
		return nil
	}
}

// String returns the trimmed value.
func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

// Empty reports whether the value is blank.
func (t Text) Empty() bool {
	return t.String() == ""
}

// Charge is one line of an origin, freight or destination charge table.
type Charge struct {
	Charges  Text `json:"charges,omitempty"`
	Currency Text `json:"currency,omitempty"`
	Amount   Text `json:"amount,omitempty"`
	Unit     Text `json:"unit,omitempty"`
}

// Present reports whether the row carries a description or an amount.
// Rows with neither are skipped by every renderer.
func (c Charge) Present() bool {
	return !c.Charges.Empty() || !c.Amount.Empty()
}

// Quotation is a freight quotation as served by the quotation API.
// All attributes except ID and Segment are optional.
type Quotation struct {
	ID        string `json:"id"`
	StorageID string `json:"_id,omitempty"`
	Segment   string `json:"quotationSegment"`

	CustomerName  Text `json:"customerName,omitempty"`
	ConsigneeName Text `json:"consigneeName,omitempty"`

	NumberOfPackets  Text `json:"numberOfPackets,omitempty"`
	Weight           Text `json:"weight,omitempty"`
	CargoSize        Text `json:"cargoSize,omitempty"`
	Size             Text `json:"size,omitempty"`
	VolumeWeight     Text `json:"volumeWeight,omitempty"`
	ChargeableWeight Text `json:"chargeableWeight,omitempty"`
	Commodity        Text `json:"commodity,omitempty"`
	Terms            Text `json:"terms,omitempty"`
	Equipment        Text `json:"equipment,omitempty"`
	CBM              Text `json:"cbm,omitempty"`
	ServiceJobType   Text `json:"serviceJobType,omitempty"`

	AirPortOfDeparture   Text `json:"airPortOfDeparture,omitempty"`
	AirPortOfDestination Text `json:"airPortOfDestination,omitempty"`
	AirLines             Text `json:"airLines,omitempty"`
	POR                  Text `json:"por,omitempty"`
	POL                  Text `json:"pol,omitempty"`
	POD                  Text `json:"pod,omitempty"`
	FinalDestination     Text `json:"finalDestination,omitempty"`
	RailRamp             Text `json:"railRamp,omitempty"`
	ShippingLine         Text `json:"shippingLine,omitempty"`
	TransitTime          Text `json:"transitTime,omitempty"`
	ETD                  Text `json:"etd,omitempty"`
	ETA                  Text `json:"eta,omitempty"`

	OriginCharges      []Charge `json:"originCharges,omitempty"`
	FreightCharges     []Charge `json:"freightCharges,omitempty"`
	DestinationCharges []Charge `json:"destinationCharges,omitempty"`

	TermsAndConditions []string `json:"termsAndConditions,omitempty"`
	Remarks            Text     `json:"remarks,omitempty"`

	CreatedBy         string `json:"createdBy,omitempty"`
	CreatedByRole     string `json:"createdByRole,omitempty"`
	CreatedByLocation string `json:"createdByLocation,omitempty"`
	CreatedDate       string `json:"createdDate,omitempty"`

	// Extra holds attributes this package does not model. They are sent
	// back unchanged on update so a whole-object replace never drops them.
	Extra map[string]json.RawMessage `json:"-"`
}

type quotationFields Quotation

var knownQuotationKeys = jsonKeys(reflect.TypeOf(quotationFields{}))

func jsonKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		keys[name] = true
	}
	return keys
}

// UnmarshalJSON decodes the modelled attributes and keeps the rest in Extra.
func (q *Quotation) UnmarshalJSON(b []byte) error {
	var fields quotationFields
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for k := range raw {
		if knownQuotationKeys[k] {
			delete(raw, k)
		}
	}
	*q = Quotation(fields)
	if len(raw) > 0 {
		q.Extra = raw
	}
	return nil
}

// MarshalJSON encodes the modelled attributes merged with Extra.
func (q Quotation) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(quotationFields(q))
	if err != nil || len(q.Extra) == 0 {
		return base, err
	}
	merged := make(map[string]json.RawMessage, len(q.Extra)+16)
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range q.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// Kind classifies the quotation's segment label.
func (q Quotation) Kind() SegmentKind {
	return Classify(q.Segment)
}

// CargoSizeValue returns cargoSize, falling back to size.
func (q Quotation) CargoSizeValue() Text {
	if !q.CargoSize.Empty() {
		return q.CargoSize
	}
	return q.Size
}

// UpdateKey returns the key used for the first update attempt and the
// fallback storage key, if one exists and differs.
func (q Quotation) UpdateKey() (primary, fallback string) {
	primary = q.ID
	if q.StorageID != "" && q.StorageID != q.ID {
		fallback = q.StorageID
	}
	if primary == "" {
		primary, fallback = fallback, ""
	}
	return primary, fallback
}

var createdDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CreatedAt parses createdDate. Timestamps with a zone are converted to
// local time; date-only and zone-less values are read as local time.
func (q Quotation) CreatedAt() (time.Time, bool) {
	s := strings.TrimSpace(q.CreatedDate)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range createdDateLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano || layout == time.RFC3339 {
			t, err = time.Parse(layout, s)
			if err == nil {
				return t.Local(), true
			}
			continue
		}
		t, err = time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Clone returns a deep copy suitable for staging edits.
func (q Quotation) Clone() Quotation {
	c := q
	c.OriginCharges = append([]Charge(nil), q.OriginCharges...)
	c.FreightCharges = append([]Charge(nil), q.FreightCharges...)
	c.DestinationCharges = append([]Charge(nil), q.DestinationCharges...)
	c.TermsAndConditions = append([]string(nil), q.TermsAndConditions...)
	if q.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(q.Extra))
		for k, v := range q.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}
