package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// BuildLedger folds expenses into userID's personal ledger.
//
// Algorithm:
//   - For each expense: the user's share is SplitAmounts[userID]
//   - Expenses without an entry for the user are listed with a zero share
//     and do not contribute to the total
//   - TotalExpense is the sum of the listed shares
//
// The caller is expected to pass only expenses the user participates in;
// entries are emitted in input order.
func BuildLedger(userID string, expenses []*models.Expense) models.Ledger {
	ledger := models.Ledger{
		UserID:   userID,
		Expenses: make([]models.LedgerEntry, 0, len(expenses)),
	}

	total := decimal.Zero
	for _, e := range expenses {
		share, ok := e.ShareOf(userID)
		if ok {
			total = total.Add(decimal.NewFromFloat(share))
		} else {
			share = 0
		}

		ledger.Expenses = append(ledger.Expenses, models.LedgerEntry{
			ID:        e.ID,
			Title:     e.Title,
			Share:     share,
			AddedBy:   e.AddedBy,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
			Version:   e.Version,
		})
	}

	ledger.TotalExpense = total.InexactFloat64()
	return ledger
}
