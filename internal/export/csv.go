// Package export renders expense records as downloadable tabular files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

const (
	// BalanceSheetFilename is the attachment name used for balance sheet downloads.
	BalanceSheetFilename = "balance_sheet.csv"
	// CSVContentType is the media type of BalanceSheetCSV output.
	CSVContentType = "text/csv"
)

// BalanceSheetFields is the fixed column set of a balance sheet.
var BalanceSheetFields = []string{"title", "totalAmount", "splitMethod", "splitAmounts", "participants", "addedBy", "createdAt"}

// BalanceSheetCSV renders expenses as CSV with a header row of BalanceSheetFields.
// splitAmounts and participants are encoded as JSON inside their cells.
func BalanceSheetCSV(expenses []*models.Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(BalanceSheetFields); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range expenses {
		record, err := balanceSheetRecord(e)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write expense %s: %w", e.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func balanceSheetRecord(e *models.Expense) ([]string, error) {
	// encoding/json sorts map keys, so the cell is stable across reads.
	amounts := e.SplitAmounts
	if amounts == nil {
		amounts = map[string]float64{}
	}
	splitAmounts, err := json.Marshal(amounts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode split amounts: %w", err)
	}

	participants := e.Participants
	if participants == nil {
		participants = []string{}
	}
	participantsJSON, err := json.Marshal(participants)
	if err != nil {
		return nil, fmt.Errorf("failed to encode participants: %w", err)
	}

	return []string{
		e.Title,
		strconv.FormatFloat(e.TotalAmount, 'f', -1, 64),
		string(e.SplitMethod),
		string(splitAmounts),
		string(participantsJSON),
		e.AddedBy,
		e.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}
