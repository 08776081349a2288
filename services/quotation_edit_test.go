package services

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editBase() Quotation {
	return Quotation{
		ID:             "QT-202506-0012",
		StorageID:      "66a1f0c2",
		Segment:        "Sea FCL Export",
		CustomerName:   "Acme Exports",
		Equipment:      "20ft Standard",
		Remarks:        "original",
		FreightCharges: []Charge{{Charges: "Ocean Freight", Currency: "USD", Amount: "900", Unit: "Per Container"}},
		OriginCharges:  []Charge{{Charges: "THC", Currency: "INR", Amount: "5000"}},
		TermsAndConditions: []string{
			"Valid for 7 days",
		},
	}
}

func TestApplyForm_ScalarFields(t *testing.T) {
	q := editBase()
	form := url.Values{
		"id":               {"QT-202506-0012"},
		"quotationSegment": {"Sea FCL Export"},
		"equipment":        {" 40ft Standard "},
		"remarks":          {"Rates revised"},
	}

	staged, errs := ApplyForm(q, form)
	require.Empty(t, errs)
	assert.Equal(t, "40ft Standard", staged.Equipment.String())
	assert.Equal(t, "Rates revised", staged.Remarks.String())
	assert.Equal(t, "Acme Exports", staged.CustomerName.String(), "fields absent from the form are kept")
	assert.Equal(t, "66a1f0c2", staged.StorageID)

	assert.Equal(t, "20ft Standard", q.Equipment.String(), "the original must not be modified")
}

func TestApplyForm_ClearsFieldSentEmpty(t *testing.T) {
	staged, errs := ApplyForm(editBase(), url.Values{"remarks": {""}})
	require.Empty(t, errs)
	assert.True(t, staged.Remarks.Empty())
}

func TestApplyForm_IDIsImmutable(t *testing.T) {
	_, errs := ApplyForm(editBase(), url.Values{"id": {"QT-999"}})
	require.Len(t, errs, 1)
	assert.Equal(t, "id", errs[0].Field)
}

func TestApplyForm_SegmentRequired(t *testing.T) {
	staged, errs := ApplyForm(editBase(), url.Values{"quotationSegment": {"  "}})
	require.Len(t, errs, 1)
	assert.Equal(t, "quotationSegment", errs[0].Field)
	assert.Equal(t, "", staged.Segment, "the staged copy reflects what was typed")
}

func TestApplyForm_SegmentChangeReclassifies(t *testing.T) {
	staged, errs := ApplyForm(editBase(), url.Values{"quotationSegment": {"Air Export"}})
	require.Empty(t, errs)
	assert.Equal(t, SegmentAir, staged.Kind())
}

func TestApplyForm_ChargeRows(t *testing.T) {
	form := url.Values{
		ChargeFieldName(TableFreight, 0, "charges"):  {"Ocean Freight"},
		ChargeFieldName(TableFreight, 0, "currency"): {"USD"},
		ChargeFieldName(TableFreight, 0, "amount"):   {"1,200"},
		ChargeFieldName(TableFreight, 1, "charges"):  {""},
		ChargeFieldName(TableFreight, 1, "amount"):   {""},
		ChargeFieldName(TableFreight, 2, "charges"):  {"BAF"},
		ChargeFieldName(TableFreight, 2, "amount"):   {"150"},
		ChargeFieldName(TableFreight, 2, "unit"):     {"Per BL"},
	}

	staged, errs := ApplyForm(editBase(), form)
	require.Empty(t, errs)
	require.Len(t, staged.FreightCharges, 2, "blank rows are dropped")
	assert.Equal(t, Charge{Charges: "Ocean Freight", Currency: "USD", Amount: "1,200"}, staged.FreightCharges[0])
	assert.Equal(t, Charge{Charges: "BAF", Amount: "150", Unit: "Per BL"}, staged.FreightCharges[1])

	require.Len(t, staged.OriginCharges, 1, "tables absent from the form are kept")
	assert.Equal(t, "THC", staged.OriginCharges[0].Charges.String())
}

func TestApplyForm_CountMarkerClearsTable(t *testing.T) {
	staged, errs := ApplyForm(editBase(), url.Values{"originCharges.count": {"0"}})
	require.Empty(t, errs)
	assert.Empty(t, staged.OriginCharges)
	assert.Len(t, staged.FreightCharges, 1)
}

func TestApplyForm_InvalidAmount(t *testing.T) {
	form := url.Values{
		ChargeFieldName(TableDestination, 0, "charges"): {"DO Fee"},
		ChargeFieldName(TableDestination, 0, "amount"):  {"twelve"},
	}

	staged, errs := ApplyForm(editBase(), form)
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].Row)
	assert.Equal(t, "destinationCharges.amount", errs[0].Field)
	assert.Contains(t, errs[0].Message, "Destination Charges row 1")
	require.Len(t, staged.DestinationCharges, 1, "the row is kept so the form shows what was typed")

	err := ValidationErrors(errs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twelve")
}

func TestApplyForm_Terms(t *testing.T) {
	form := url.Values{"termsAndConditions": {"Valid for 15 days\r\n\n  Subject to GST  \nRates in USD"}}

	staged, errs := ApplyForm(editBase(), form)
	require.Empty(t, errs)
	assert.Equal(t, []string{"Valid for 15 days", "Subject to GST", "Rates in USD"}, staged.TermsAndConditions)
}

func TestEditableField_Value(t *testing.T) {
	q := editBase()
	values := make(map[string]string)
	for _, f := range EditableFields {
		values[f.Key] = f.Value(q)
	}
	assert.Equal(t, "Acme Exports", values["customerName"])
	assert.Equal(t, "20ft Standard", values["equipment"])
	assert.Equal(t, "", values["pol"])
}

func TestChargeTable(t *testing.T) {
	assert.Equal(t, "freightCharges.3.unit", ChargeFieldName(TableFreight, 3, "unit"))
	assert.Equal(t, UnitPerContainer, TableFreight.DefaultUnit())
	assert.Equal(t, UnitPerShipment, TableOrigin.DefaultUnit())
	assert.Equal(t, "Origin Charges", TableOrigin.Title())
	assert.Len(t, TableFreight.Rows(editBase()), 1)
}
