package calculator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// Epsilon is the tolerance applied when comparing a sum of amounts to the
// expense total, or a sum of percentages to 100.
const Epsilon = 0.01

var (
	epsilon    = decimal.NewFromFloat(Epsilon)
	oneHundred = decimal.NewFromInt(100)
)

// ValidationError reports a split request that is internally inconsistent.
// Nothing is persisted when one is returned.
type ValidationError struct {
	Method  models.SplitMethod
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(method models.SplitMethod, format string, args ...any) error {
	return &ValidationError{Method: method, Message: fmt.Sprintf(format, args...)}
}

// SplitParams carries the method-specific inputs of a split request.
type SplitParams struct {
	// SplitAmounts is required for the exact method.
	SplitAmounts map[string]float64

	// Percentages is required for the percentage method.
	Percentages map[string]float64
}

// ComputeSplit distributes total among participants according to method and
// returns the amount owed per participant.
//
//   - equal: every participant owes total / len(participants)
//   - exact: params.SplitAmounts is returned as-is once it sums to total
//   - percentage: participant p owes Percentages[p] / 100 * total once the
//     percentages sum to 100
//
// Sums are accumulated in decimal arithmetic and compared within Epsilon.
func ComputeSplit(total float64, participants []string, method models.SplitMethod, params SplitParams) (map[string]float64, error) {
	if !method.Valid() {
		return nil, invalid(method, "Invalid split method")
	}
	if total <= 0 {
		return nil, invalid(method, "total amount must be greater than zero")
	}
	if err := validateParticipants(method, participants); err != nil {
		return nil, err
	}

	switch method {
	case models.SplitEqual:
		return splitEqual(total, participants), nil
	case models.SplitExact:
		return splitExact(total, params.SplitAmounts)
	default:
		return splitPercentage(total, participants, params.Percentages)
	}
}

// validateParticipants rejects empty, blank and duplicate identities.
// Shares are keyed by participant, so a duplicate would silently collapse
// into a single share.
func validateParticipants(method models.SplitMethod, participants []string) error {
	if len(participants) == 0 {
		return invalid(method, "must have at least one participant")
	}
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if strings.TrimSpace(p) == "" {
			return invalid(method, "participant id cannot be empty")
		}
		if seen[p] {
			return invalid(method, "duplicate participant: %s", p)
		}
		seen[p] = true
	}
	return nil
}

func splitEqual(total float64, participants []string) map[string]float64 {
	share := decimal.NewFromFloat(total).
		Div(decimal.NewFromInt(int64(len(participants)))).
		InexactFloat64()

	splits := make(map[string]float64, len(participants))
	for _, p := range participants {
		splits[p] = share
	}
	return splits
}

func splitExact(total float64, amounts map[string]float64) (map[string]float64, error) {
	if len(amounts) == 0 {
		return nil, invalid(models.SplitExact, "split amounts are required for the exact method")
	}
	if !withinEpsilon(sum(amounts), decimal.NewFromFloat(total)) {
		return nil, invalid(models.SplitExact, "Exact amounts must add up to the total amount")
	}

	splits := make(map[string]float64, len(amounts))
	for p, amount := range amounts {
		splits[p] = amount
	}
	return splits, nil
}

func splitPercentage(total float64, participants []string, percentages map[string]float64) (map[string]float64, error) {
	if len(percentages) == 0 {
		return nil, invalid(models.SplitPercentage, "percentages are required for the percentage method")
	}
	for p, pct := range percentages {
		if pct < 0 {
			return nil, invalid(models.SplitPercentage, "percentage for %s cannot be negative", p)
		}
	}
	if !withinEpsilon(sum(percentages), oneHundred) {
		return nil, invalid(models.SplitPercentage, "Percentages must add up to 100%%")
	}

	// Every percentage must belong to a participant, or the shares would not sum to total.
	isParticipant := make(map[string]bool, len(participants))
	for _, p := range participants {
		isParticipant[p] = true
	}
	for _, key := range sortedKeys(percentages) {
		if !isParticipant[key] {
			return nil, invalid(models.SplitPercentage, "percentage given for non-participant: %s", key)
		}
	}

	totalDec := decimal.NewFromFloat(total)
	splits := make(map[string]float64, len(participants))
	for _, p := range participants {
		pct, ok := percentages[p]
		if !ok {
			return nil, invalid(models.SplitPercentage, "missing percentage for participant: %s", p)
		}
		splits[p] = decimal.NewFromFloat(pct).Div(oneHundred).Mul(totalDec).InexactFloat64()
	}
	return splits, nil
}

// sortedKeys keeps error messages stable across map iteration orders.
func sortedKeys(values map[string]float64) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sum(values map[string]float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total
}

func withinEpsilon(got, want decimal.Decimal) bool {
	return got.Sub(want).Abs().LessThanOrEqual(epsilon)
}
