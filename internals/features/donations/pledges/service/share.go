// file: internals/features/donations/pledges/service/share.go
package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	listModel "jamaahku_backend/internals/features/donations/lists/model"
	"jamaahku_backend/internals/features/donations/pledges/model"
)

// ShareSummary merender rekap list donasi jadi teks siap share (WhatsApp
// dsb): total vs kuota per item + daftar pledger. Murni formatting,
// deterministik untuk input yang sama.
//
// onlyItem != nil membatasi rekap ke satu item saja.
func ShareSummary(
	list *listModel.DonationList,
	items []listModel.DonationItem,
	pledgesByItem map[uuid.UUID][]model.DonationPledge,
	memberNames map[uuid.UUID]string,
	onlyItem *uuid.UUID,
) string {
	var b strings.Builder

	b.WriteString("*")
	b.WriteString(list.DonationListName)
	b.WriteString("*\n")
	if list.DonationListEventDate != nil {
		b.WriteString("Tanggal: ")
		b.WriteString(list.DonationListEventDate.Format("02-01-2006"))
		b.WriteString("\n")
	}

	// urutkan item: nama, lalu id (biar stabil untuk nama kembar)
	sorted := make([]listModel.DonationItem, 0, len(items))
	for _, it := range items {
		if onlyItem != nil && it.DonationItemID != *onlyItem {
			continue
		}
		sorted = append(sorted, it)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].DonationItemName != sorted[j].DonationItemName {
			return sorted[i].DonationItemName < sorted[j].DonationItemName
		}
		return sorted[i].DonationItemID.String() < sorted[j].DonationItemID.String()
	})

	for _, it := range sorted {
		pledges := pledgesByItem[it.DonationItemID]
		agg := AggregateFromPledges(&it, pledges)

		b.WriteString("\n")
		b.WriteString(it.DonationItemName)
		b.WriteString(" (")
		b.WriteString(it.DonationItemUnit)
		b.WriteString("): ")
		b.WriteString(formatQty(agg.TotalPledged))
		if it.HasQuota() {
			b.WriteString("/")
			b.WriteString(formatQty(*it.DonationItemRequestedQty))
			if agg.IsFull {
				b.WriteString(" ✅")
			}
		} else {
			b.WriteString(" (tanpa target)")
		}
		b.WriteString("\n")

		// roster pledger: nama, lalu waktu submit, lalu id
		rows := make([]model.DonationPledge, len(pledges))
		copy(rows, pledges)
		sort.Slice(rows, func(i, j int) bool {
			ni := pledgerName(memberNames, rows[i].DonationPledgeMemberID)
			nj := pledgerName(memberNames, rows[j].DonationPledgeMemberID)
			if ni != nj {
				return ni < nj
			}
			if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
				return rows[i].CreatedAt.Before(rows[j].CreatedAt)
			}
			return rows[i].DonationPledgeID.String() < rows[j].DonationPledgeID.String()
		})
		for _, p := range rows {
			b.WriteString("  - ")
			b.WriteString(pledgerName(memberNames, p.DonationPledgeMemberID))
			b.WriteString(": ")
			b.WriteString(formatQty(p.DonationPledgeQty))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func pledgerName(names map[uuid.UUID]string, id uuid.UUID) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return "(tanpa nama)"
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
