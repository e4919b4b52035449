// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package analytics

import (
	"testing"
	"time"

	"github.com/tomtom215/cohortpulse/internal/models"
)

func claim(t *testing.T, id, payer, serviceType, serviceDate, datePaid string, billed, paid float64) models.Claim {
	t.Helper()
	sd, err := time.Parse("2006-01-02", serviceDate)
	if err != nil {
		t.Fatalf("bad service date %q: %v", serviceDate, err)
	}
	dp, err := time.Parse("2006-01-02", datePaid)
	if err != nil {
		t.Fatalf("bad paid date %q: %v", datePaid, err)
	}
	return models.Claim{
		ClaimID:      id,
		Payer:        payer,
		ServiceType:  serviceType,
		ServiceDate:  sd,
		DatePaid:     dp,
		BilledAmount: billed,
		AmountPaid:   paid,
	}
}

func sampleClaims(t *testing.T) []models.Claim {
	t.Helper()
	return []models.Claim{
		// Claim A: billed 1000, paid across two months.
		claim(t, "A", "Aetna", "Imaging", "2024-01-10", "2024-02-05", 1000, 300),
		claim(t, "A", "Aetna", "Imaging", "2024-01-10", "2024-03-12", 1000, 200),
		// Claim B: different service month, single payment.
		claim(t, "B", "Cigna", "Lab", "2024-02-20", "2024-03-01", 500, 450),
	}
}

func TestBuildWaterfall(t *testing.T) {
	t.Parallel()

	wf := BuildWaterfall(sampleClaims(t), ClaimFilter{})

	if len(wf.Matrix) != 2 {
		t.Fatalf("matrix has %d rows, want 2", len(wf.Matrix))
	}

	jan := wf.Matrix[0]
	if jan.DOSMonth != "2024-01" {
		t.Errorf("row 0 month = %s, want 2024-01", jan.DOSMonth)
	}
	// Billed amount repeats per payment row but is counted once.
	if jan.GrossCharge != 1000 {
		t.Errorf("row 0 gross = %v, want 1000", jan.GrossCharge)
	}
	if jan.Payments["2024-02"] != 300 || jan.Payments["2024-03"] != 200 {
		t.Errorf("row 0 payments = %v", jan.Payments)
	}

	feb := wf.Matrix[1]
	if feb.GrossCharge != 500 {
		t.Errorf("row 1 gross = %v, want 500", feb.GrossCharge)
	}
	// Payment months with no cash for this row are explicit zeros.
	if v, ok := feb.Payments["2024-02"]; !ok || v != 0 {
		t.Errorf("row 1 2024-02 = %v (ok=%v), want explicit 0", v, ok)
	}
	if feb.Payments["2024-03"] != 450 {
		t.Errorf("row 1 2024-03 = %v, want 450", feb.Payments["2024-03"])
	}

	wantMonths := []string{"2024-02", "2024-03"}
	if len(wf.PaymentMonths) != len(wantMonths) {
		t.Fatalf("payment months = %v, want %v", wf.PaymentMonths, wantMonths)
	}
	for i, m := range wantMonths {
		if wf.PaymentMonths[i] != m {
			t.Errorf("payment month[%d] = %s, want %s", i, wf.PaymentMonths[i], m)
		}
	}

	if wf.Totals.GrossCharge != 1500 {
		t.Errorf("total gross = %v, want 1500", wf.Totals.GrossCharge)
	}
	if wf.Totals.Payments["2024-03"] != 650 {
		t.Errorf("total 2024-03 = %v, want 650", wf.Totals.Payments["2024-03"])
	}
}

func TestBuildWaterfallFiltered(t *testing.T) {
	t.Parallel()

	wf := BuildWaterfall(sampleClaims(t), ClaimFilter{Payer: "Cigna"})

	if len(wf.Matrix) != 1 {
		t.Fatalf("matrix has %d rows, want 1", len(wf.Matrix))
	}
	if wf.Matrix[0].DOSMonth != "2024-02" || wf.Matrix[0].GrossCharge != 500 {
		t.Errorf("filtered row = %+v", wf.Matrix[0])
	}
	if len(wf.PaymentMonths) != 1 || wf.PaymentMonths[0] != "2024-03" {
		t.Errorf("filtered payment months = %v, want [2024-03]", wf.PaymentMonths)
	}
}

func TestBuildWaterfallEmptyResult(t *testing.T) {
	t.Parallel()

	wf := BuildWaterfall(sampleClaims(t), ClaimFilter{Payer: "Humana"})

	if wf.Matrix == nil || len(wf.Matrix) != 0 {
		t.Errorf("matrix = %#v, want empty non-nil slice", wf.Matrix)
	}
	if wf.PaymentMonths == nil || len(wf.PaymentMonths) != 0 {
		t.Errorf("payment months = %#v, want empty non-nil slice", wf.PaymentMonths)
	}
	if wf.Totals.GrossCharge != 0 {
		t.Errorf("total gross = %v, want 0", wf.Totals.GrossCharge)
	}
	if wf.Totals.Payments == nil || len(wf.Totals.Payments) != 0 {
		t.Errorf("total payments = %#v, want empty non-nil map", wf.Totals.Payments)
	}
}

func TestPayersAndServiceTypes(t *testing.T) {
	t.Parallel()

	claims := sampleClaims(t)

	payers := Payers(claims)
	if len(payers) != 2 || payers[0] != "Aetna" || payers[1] != "Cigna" {
		t.Errorf("Payers() = %v, want [Aetna Cigna]", payers)
	}
	types := ServiceTypes(claims)
	if len(types) != 2 || types[0] != "Imaging" || types[1] != "Lab" {
		t.Errorf("ServiceTypes() = %v, want [Imaging Lab]", types)
	}
}
