package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	listModel "jamaahku_backend/internals/features/donations/lists/model"
	"jamaahku_backend/internals/features/donations/pledges/model"
)

func TestShareSummary(t *testing.T) {
	eventDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	list := &listModel.DonationList{
		DonationListID:        uuid.New(),
		DonationListName:      "Buka Puasa 2026",
		DonationListEventDate: &eventDate,
	}

	beras := listModel.DonationItem{
		DonationItemID:           uuid.New(),
		DonationItemListID:       list.DonationListID,
		DonationItemName:         "Beras",
		DonationItemUnit:         "kg",
		DonationItemRequestedQty: qty(10),
	}
	air := listModel.DonationItem{
		DonationItemID:     uuid.New(),
		DonationItemListID: list.DonationListID,
		DonationItemName:   "Air mineral",
		DonationItemUnit:   "dus",
	}

	ahmad := uuid.New()
	budi := uuid.New()
	names := map[uuid.UUID]string{ahmad: "Ahmad", budi: "Budi"}

	pledges := map[uuid.UUID][]model.DonationPledge{
		beras.DonationItemID: {
			{DonationPledgeID: uuid.New(), DonationPledgeItemID: beras.DonationItemID, DonationPledgeMemberID: budi, DonationPledgeQty: 4},
			{DonationPledgeID: uuid.New(), DonationPledgeItemID: beras.DonationItemID, DonationPledgeMemberID: ahmad, DonationPledgeQty: 6},
		},
		air.DonationItemID: {
			{DonationPledgeID: uuid.New(), DonationPledgeItemID: air.DonationItemID, DonationPledgeMemberID: ahmad, DonationPledgeQty: 2},
		},
	}

	items := []listModel.DonationItem{beras, air}
	out := ShareSummary(list, items, pledges, names, nil)

	wantLines := []string{
		"*Buka Puasa 2026*",
		"Tanggal: 02-03-2026",
		"Beras (kg): 10/10 ✅",
		"  - Ahmad: 6",
		"  - Budi: 4",
		"Air mineral (dus): 2 (tanpa target)",
		"  - Ahmad: 2",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Errorf("summary missing line %q\n---\n%s", line, out)
		}
	}

	// deterministik: input sama (urutan slice dibalik pun) → output sama
	reversed := []listModel.DonationItem{air, beras}
	again := ShareSummary(list, reversed, pledges, names, nil)
	if out != again {
		t.Errorf("summary not deterministic:\n%q\nvs\n%q", out, again)
	}

	// item tersortir by nama: "Air mineral" sebelum "Beras"
	if strings.Index(out, "Air mineral") > strings.Index(out, "Beras") {
		t.Errorf("items not sorted by name:\n%s", out)
	}

	t.Run("single item filter", func(t *testing.T) {
		out := ShareSummary(list, items, pledges, names, &beras.DonationItemID)
		if !strings.Contains(out, "Beras") {
			t.Errorf("filtered summary missing Beras:\n%s", out)
		}
		if strings.Contains(out, "Air mineral") {
			t.Errorf("filtered summary should not contain Air mineral:\n%s", out)
		}
	})

	t.Run("unknown member name", func(t *testing.T) {
		anon := uuid.New()
		p := map[uuid.UUID][]model.DonationPledge{
			air.DonationItemID: {
				{DonationPledgeID: uuid.New(), DonationPledgeItemID: air.DonationItemID, DonationPledgeMemberID: anon, DonationPledgeQty: 1},
			},
		}
		out := ShareSummary(list, []listModel.DonationItem{air}, p, names, nil)
		if !strings.Contains(out, "(tanpa nama)") {
			t.Errorf("expected placeholder for unknown member:\n%s", out)
		}
	})
}
