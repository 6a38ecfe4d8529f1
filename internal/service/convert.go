package service

import (
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		Id:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		Id:           e.ID,
		Title:        e.Title,
		TotalAmount:  e.TotalAmount,
		SplitMethod:  string(e.SplitMethod),
		SplitAmounts: e.SplitAmounts,
		Participants: e.Participants,
		AddedBy:      e.AddedBy,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
		Version:      e.Version,
	}
}

func toAPIExpenses(expenses []*models.Expense) []*api.Expense {
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return out
}

func toAPILedgerEntries(entries []models.LedgerEntry) []*api.LedgerEntry {
	out := make([]*api.LedgerEntry, len(entries))
	for i, e := range entries {
		out[i] = &api.LedgerEntry{
			Id:        e.ID,
			Title:     e.Title,
			Share:     e.Share,
			AddedBy:   e.AddedBy,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
			Version:   e.Version,
		}
	}
	return out
}
