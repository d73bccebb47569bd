package assessment

import (
	"errors"
	"testing"
)

func TestScorePHQ9(t *testing.T) {
	tests := []struct {
		name      string
		responses []int
		want      int
		wantBand  string
		wantErr   bool
	}{
		{
			name:      "all zeros",
			responses: []int{0, 0, 0, 0, 0, 0, 0, 0, 0},
			want:      0,
			wantBand:  "Minimal depression",
		},
		{
			name:      "score three is minimal",
			responses: []int{1, 1, 1, 0, 0, 0, 0, 0, 0},
			want:      3,
			wantBand:  "Minimal depression",
		},
		{
			name:      "score twenty two is severe",
			responses: []int{3, 3, 3, 3, 3, 3, 2, 1, 1},
			want:      22,
			wantBand:  "Severe depression",
		},
		{
			name:      "boundary moderate",
			responses: []int{2, 2, 2, 2, 2, 2, 2, 0, 0},
			want:      14,
			wantBand:  "Moderate depression",
		},
		{
			name:      "too few items",
			responses: []int{1, 2, 3},
			wantErr:   true,
		},
		{
			name:      "value above max",
			responses: []int{0, 0, 0, 0, 4, 0, 0, 0, 0},
			wantErr:   true,
		},
		{
			name:      "negative value",
			responses: []int{0, 0, 0, 0, -1, 0, 0, 0, 0},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(PHQ9, tt.responses)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Score() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidResponseRange) {
					t.Fatalf("Score() error = %v, want ErrInvalidResponseRange", err)
				}
				return
			}
			if got != tt.want {
				t.Fatalf("Score() = %d, want %d", got, tt.want)
			}
			if band := Interpret(PHQ9, got); band != tt.wantBand {
				t.Fatalf("Interpret() = %q, want %q", band, tt.wantBand)
			}
		})
	}
}

func TestScoreGAD7(t *testing.T) {
	tests := []struct {
		name      string
		responses []int
		want      int
		wantBand  string
	}{
		{"minimal", []int{0, 1, 0, 1, 0, 1, 0}, 3, "Minimal anxiety"},
		{"mild", []int{1, 1, 1, 1, 1, 1, 1}, 7, "Mild anxiety"},
		{"moderate", []int{2, 2, 2, 2, 2, 2, 2}, 14, "Moderate anxiety"},
		{"severe", []int{3, 3, 3, 3, 3, 2, 2}, 19, "Severe anxiety"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(GAD7, tt.responses)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Score() = %d, want %d", got, tt.want)
			}
			if band := Interpret(GAD7, got); band != tt.wantBand {
				t.Fatalf("Interpret() = %q, want %q", band, tt.wantBand)
			}
		})
	}
}

func TestScoreStressReversesItems(t *testing.T) {
	// Positions 3, 4, 6, 7 score as 4-value:
	// 2+2+2+(4-2)+(4-2)+2+(4-2)+(4-2) = 16.
	got, err := Score(Stress, []int{2, 2, 2, 2, 2, 2, 2, 2})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if got != 16 {
		t.Fatalf("Score() = %d, want 16", got)
	}
	if band := Interpret(Stress, got); band != "Moderate stress" {
		t.Fatalf("Interpret() = %q, want %q", band, "Moderate stress")
	}

	// All zeros: the four reversed items contribute the max each.
	got, err = Score(Stress, []int{0, 0, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if got != 16 {
		t.Fatalf("Score() = %d, want 16", got)
	}
}

func TestScoreStressBands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "Low stress"},
		{13, "Low stress"},
		{14, "Moderate stress"},
		{26, "Moderate stress"},
		{27, "High stress"},
	}
	for _, tt := range tests {
		if got := Interpret(Stress, tt.score); got != tt.want {
			t.Fatalf("Interpret(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestValidateResponses(t *testing.T) {
	if !ValidateResponses([]int{0, 2, 4}, 4) {
		t.Fatal("ValidateResponses rejected in-range values")
	}
	if ValidateResponses([]int{0, 5}, 4) {
		t.Fatal("ValidateResponses accepted a value above max")
	}
	if ValidateResponses([]int{-1}, 4) {
		t.Fatal("ValidateResponses accepted a negative value")
	}
	if !ValidateResponses(nil, 4) {
		t.Fatal("ValidateResponses rejected empty input")
	}
}

func TestUnknownInstrument(t *testing.T) {
	if _, err := Score(Instrument("mmpi"), []int{1}); !errors.Is(err, ErrInvalidResponseRange) {
		t.Fatalf("Score() error = %v, want ErrInvalidResponseRange", err)
	}
	if Instrument("mmpi").Valid() {
		t.Fatal("unknown instrument reported valid")
	}
}
