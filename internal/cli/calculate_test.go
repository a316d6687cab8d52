package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/config"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.MemoryLimit = "1GiB"
	plan, err := chudnovsky.Plan(1000)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	PrintExecutionConfig(cfg, plan, 4, &buf)
	for _, want := range []string{"π to 1,000 digits", "71 terms", "3322 bits", "4 workers", "timeout of 5m0s", "Memory limit: 1GiB"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output should contain %q:\n%s", want, buf.String())
		}
	}
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := chudnovsky.NewDefaultFactory()
	tests := []struct {
		name  string
		calcs []chudnovsky.Calculator
		want  string
	}{
		{"single", []chudnovsky.Calculator{chudnovsky.NewSeriesCalculator(chudnovsky.SignByParity)}, "single run with the parity variant"},
		{"comparison", factory.GetAll(), "parallel comparison of 2 variants"},
		{"empty", nil, "nothing to run"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			PrintExecutionMode(tt.calcs, &buf)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q should contain %q", buf.String(), tt.want)
			}
		})
	}
}
