package boilerplate

import (
	"math"
	"strings"
	"testing"
)

func TestDetector_IsBoilerplate(t *testing.T) {
	d := New()

	tests := []struct {
		name     string
		sentence string
		index    int
		total    int
		expected bool
	}{
		{
			name:     "copyright footer at end",
			sentence: "Copyright 2024, all rights reserved, reproduction without permission prohibited.",
			index:    9,
			total:    10,
			expected: true,
		},
		{
			name:     "navigation at start",
			sentence: "Home Menu Search Login Share",
			index:    0,
			total:    10,
			expected: true,
		},
		{
			name:     "content in the middle",
			sentence: "A band-pass filter passes frequencies within a certain range and rejects frequencies outside that range.",
			index:    5,
			total:    10,
			expected: false,
		},
		{
			name:     "small page uses a high threshold",
			sentence: "This text is about filters and their rights.",
			index:    0,
			total:    2,
			expected: false,
		},
		{
			name:     "no words",
			sentence: "123 456",
			index:    0,
			total:    10,
			expected: false,
		},
		{
			name:     "negative index",
			sentence: "Copyright reserved",
			index:    -1,
			total:    5,
			expected: false,
		},
		{
			name:     "index beyond total",
			sentence: "Copyright reserved",
			index:    5,
			total:    5,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.IsBoilerplate(tt.sentence, tt.index, tt.total)
			if result != tt.expected {
				t.Errorf("IsBoilerplate(%q, %d, %d) = %v, want %v (ratio %.2f)",
					tt.sentence, tt.index, tt.total, result, tt.expected, d.Ratio(tt.sentence))
			}
		})
	}
}

func TestThreshold(t *testing.T) {
	edge := threshold(0, 11)
	middle := threshold(5, 11)
	last := threshold(10, 11)

	if edge != edgeThreshold || last != edgeThreshold {
		t.Errorf("edge thresholds = %v, %v, want %v", edge, last, edgeThreshold)
	}
	if math.Abs(middle-middleThreshold) > 1e-9 {
		t.Errorf("middle threshold = %v, want %v", middle, middleThreshold)
	}
	if threshold(1, 3) != smallThreshold {
		t.Errorf("small page threshold = %v, want %v", threshold(1, 3), smallThreshold)
	}
}

func TestDetector_Filter(t *testing.T) {
	d := New()
	sentences := []string{
		"Home Menu Search Login Share",
		"Filters shape the spectrum of a signal.",
		"A band-pass filter combines a low-pass and a high-pass stage.",
		"The bandwidth is the difference between the two cutoff frequencies.",
		"Copyright all rights reserved.",
	}

	kept := d.Filter(sentences)
	joined := strings.Join(kept, "|")

	if strings.Contains(joined, "Login") || strings.Contains(joined, "Copyright") {
		t.Errorf("Filter() kept boilerplate: %q", kept)
	}
	if len(kept) != 3 {
		t.Errorf("Filter() kept %d sentences, want 3: %q", len(kept), kept)
	}
}
