package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/mmynk/splitledger/internal/models"
)

func TestComputeSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		participants []string
		method       models.SplitMethod
		params       SplitParams
		wantErr      bool
		want         map[string]float64
	}{
		{
			name:         "equal three-way split",
			total:        300,
			participants: []string{"A", "B", "C"},
			method:       models.SplitEqual,
			want:         map[string]float64{"A": 100, "B": 100, "C": 100},
		},
		{
			name:         "equal split with repeating share",
			total:        100,
			participants: []string{"A", "B", "C"},
			method:       models.SplitEqual,
			want:         map[string]float64{"A": 33.3333, "B": 33.3333, "C": 33.3333},
		},
		{
			name:         "equal single participant owes everything",
			total:        42.5,
			participants: []string{"A"},
			method:       models.SplitEqual,
			want:         map[string]float64{"A": 42.5},
		},
		{
			name:         "exact amounts matching total",
			total:        50,
			participants: []string{"A", "B"},
			method:       models.SplitExact,
			params:       SplitParams{SplitAmounts: map[string]float64{"A": 20, "B": 30}},
			want:         map[string]float64{"A": 20, "B": 30},
		},
		{
			name:         "exact amounts with float drift accepted",
			total:        0.3,
			participants: []string{"A", "B"},
			method:       models.SplitExact,
			params:       SplitParams{SplitAmounts: map[string]float64{"A": 0.1, "B": 0.2}},
			want:         map[string]float64{"A": 0.1, "B": 0.2},
		},
		{
			name:         "exact keys are not checked against participants",
			total:        50,
			participants: []string{"A"},
			method:       models.SplitExact,
			params:       SplitParams{SplitAmounts: map[string]float64{"A": 25, "Z": 25}},
			want:         map[string]float64{"A": 25, "Z": 25},
		},
		{
			name:         "exact amounts short of total",
			total:        50,
			participants: []string{"A", "B"},
			method:       models.SplitExact,
			params:       SplitParams{SplitAmounts: map[string]float64{"A": 20, "B": 20}},
			wantErr:      true,
		},
		{
			name:         "exact without amounts",
			total:        50,
			participants: []string{"A", "B"},
			method:       models.SplitExact,
			wantErr:      true,
		},
		{
			name:         "percentage summing to 100",
			total:        100,
			participants: []string{"A", "B"},
			method:       models.SplitPercentage,
			params:       SplitParams{Percentages: map[string]float64{"A": 30, "B": 70}},
			want:         map[string]float64{"A": 30, "B": 70},
		},
		{
			name:         "percentage of non-round total",
			total:        80,
			participants: []string{"A", "B", "C"},
			method:       models.SplitPercentage,
			params:       SplitParams{Percentages: map[string]float64{"A": 50, "B": 25, "C": 25}},
			want:         map[string]float64{"A": 40, "B": 20, "C": 20},
		},
		{
			name:         "percentage summing to 90",
			total:        100,
			participants: []string{"A", "B"},
			method:       models.SplitPercentage,
			params:       SplitParams{Percentages: map[string]float64{"A": 30, "B": 60}},
			wantErr:      true,
		},
		{
			name:         "percentage missing for a participant",
			total:        100,
			participants: []string{"A", "B", "C"},
			method:       models.SplitPercentage,
			params:       SplitParams{Percentages: map[string]float64{"A": 30, "B": 70}},
			wantErr:      true,
		},
		{
			name:         "percentage for a non-participant",
			total:        100,
			participants: []string{"A", "B"},
			method:       models.SplitPercentage,
			params:       SplitParams{Percentages: map[string]float64{"A": 50, "B": 30, "C": 20}},
			wantErr:      true,
		},
		{
			name:         "negative percentage",
			total:        100,
			participants: []string{"A", "B"},
			method:       models.SplitPercentage,
			params:       SplitParams{Percentages: map[string]float64{"A": -10, "B": 110}},
			wantErr:      true,
		},
		{
			name:         "duplicate participants rejected",
			total:        100,
			participants: []string{"A", "A", "B"},
			method:       models.SplitEqual,
			wantErr:      true,
		},
		{
			name:         "no participants",
			total:        100,
			participants: []string{},
			method:       models.SplitEqual,
			wantErr:      true,
		},
		{
			name:         "blank participant",
			total:        100,
			participants: []string{"A", " "},
			method:       models.SplitEqual,
			wantErr:      true,
		},
		{
			name:         "zero total",
			total:        0,
			participants: []string{"A"},
			method:       models.SplitEqual,
			wantErr:      true,
		},
		{
			name:         "negative total",
			total:        -10,
			participants: []string{"A"},
			method:       models.SplitEqual,
			wantErr:      true,
		},
		{
			name:         "unknown method",
			total:        100,
			participants: []string{"A", "B"},
			method:       "shares",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := ComputeSplit(tt.total, tt.participants, tt.method, tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ComputeSplit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
				if splits != nil {
					t.Errorf("expected no splits on error, got %v", splits)
				}
				return
			}

			if len(splits) != len(tt.want) {
				t.Fatalf("got %d splits, want %d", len(splits), len(tt.want))
			}
			for p, want := range tt.want {
				got, ok := splits[p]
				if !ok {
					t.Errorf("missing split for %s", p)
					continue
				}
				if math.Abs(got-want) > 0.001 {
					t.Errorf("%s = %v, want %v", p, got, want)
				}
			}
		})
	}
}

func TestComputeSplit_UnknownMethodAlwaysRejects(t *testing.T) {
	// Even with otherwise invalid fields, the method error wins.
	_, err := ComputeSplit(-1, nil, "bogus", SplitParams{})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if vErr.Message != "Invalid split method" {
		t.Errorf("message = %q, want %q", vErr.Message, "Invalid split method")
	}
}

func TestComputeSplit_EqualSharesSumToTotal(t *testing.T) {
	for n := 1; n <= 12; n++ {
		participants := make([]string, n)
		for i := range participants {
			participants[i] = string(rune('A' + i))
		}
		total := 1234.56
		splits, err := ComputeSplit(total, participants, models.SplitEqual, SplitParams{})
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}

		var sum float64
		for _, share := range splits {
			if math.Abs(share-total/float64(n)) > 1e-9 {
				t.Errorf("n=%d: share %v, want %v", n, share, total/float64(n))
			}
			sum += share
		}
		if math.Abs(sum-total) > Epsilon {
			t.Errorf("n=%d: shares sum to %v, want %v", n, sum, total)
		}
	}
}

func TestComputeSplit_ValidationMessages(t *testing.T) {
	tests := []struct {
		method models.SplitMethod
		params SplitParams
		want   string
	}{
		{models.SplitExact, SplitParams{SplitAmounts: map[string]float64{"A": 20, "B": 20}}, "Exact amounts must add up to the total amount"},
		{models.SplitPercentage, SplitParams{Percentages: map[string]float64{"A": 30, "B": 60}}, "Percentages must add up to 100%"},
		{models.SplitPercentage, SplitParams{Percentages: map[string]float64{"A": 50, "B": 30, "C": 20}}, "percentage given for non-participant: C"},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			_, err := ComputeSplit(50, []string{"A", "B"}, tt.method, tt.params)
			if err == nil || err.Error() != tt.want {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}
