// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - Expense: a shared cost and the per-participant amounts owed under its split method
//   - User: a registered account; participants and creators are referenced by user ID
//   - Ledger / LedgerEntry: one user's aggregated view of their shares across expenses
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are expressed as ID strings
// 2. **Store-owned identity**: IDs, timestamps and versions are assigned by the record store
// 3. **Immutable expenses**: an Expense is written once and only read afterwards
package models
