package format

import (
	"strings"
	"testing"
	"time"
)

func TestProgressState(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(2)
	if ps.CalculateAverage() != 0 {
		t.Error("fresh state should average to 0")
	}
	ps.Update(0, 0.5)
	ps.Update(1, 1.0)
	ps.Update(7, 0.9)
	ps.Update(-1, 0.9)
	if avg := ps.CalculateAverage(); avg != 0.75 {
		t.Errorf("average = %f, want 0.75", avg)
	}
	ps.Update(0, 1.5)
	if avg := ps.CalculateAverage(); avg != 1 {
		t.Errorf("values above 1 should be clamped, average = %f", avg)
	}
	if NewProgressState(0).CalculateAverage() != 0 {
		t.Error("zero calculators should average to 0")
	}
}

func TestUpdateWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)
	avg, eta := p.UpdateWithETA(0, 0.25)
	if avg != 0.125 || eta < 0 {
		t.Errorf("first update = %f, %v", avg, eta)
	}
	avg, _ = p.UpdateWithETA(1, 0.5)
	if avg != 0.375 {
		t.Errorf("average = %f, want 0.375", avg)
	}
}

func TestGetETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)
	if p.GetETA() != 0 {
		t.Error("ETA before any rate should be 0")
	}
	p.Update(0, 0.5)
	p.progressRate = 0.1
	if eta := p.GetETA(); eta < 4*time.Second || eta > 6*time.Second {
		t.Errorf("ETA = %v, want about 5s", eta)
	}
	p.Update(0, 0.001)
	p.progressRate = 1e-7
	if eta := p.GetETA(); eta != maxETA {
		t.Errorf("ETA = %v, want capped at %v", eta, maxETA)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{500 * time.Millisecond, "< 1s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1m"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{time.Hour, "1h"},
		{3*time.Hour + 45*time.Minute, "3h45m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "░░░░░░░░░░"},
		{0.5, "█████░░░░░"},
		{1, "██████████"},
		{1.2, "██████████"},
		{-0.1, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.progress, 10); got != tt.want {
			t.Errorf("ProgressBar(%v) = %s, want %s", tt.progress, got, tt.want)
		}
	}
	if ProgressBar(0.5, 0) != "" {
		t.Error("zero-length bar should be empty")
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.5, 30*time.Second, 10)
	for _, want := range []string{"[█████░░░░░]", "50.00%", "ETA: 30s"} {
		if !strings.Contains(got, want) {
			t.Errorf("%q missing %q", got, want)
		}
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
		{1500*time.Millisecond + 300*time.Microsecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %s, want %s", tt.d, got, tt.want)
		}
	}
}
