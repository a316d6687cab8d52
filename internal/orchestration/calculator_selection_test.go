package orchestration

import (
	"testing"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/config"
)

func TestGetCalculatorsToRun(t *testing.T) {
	t.Parallel()
	factory := chudnovsky.NewDefaultFactory()

	tests := []struct {
		variant string
		want    []string
	}{
		{"parity", []string{"parity"}},
		{"negbase", []string{"negbase"}},
		{config.VariantAll, []string{"negbase", "parity"}},
		{"unknown", nil},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			cfg.Variant = tt.variant
			calcs := GetCalculatorsToRun(cfg, factory)
			if len(calcs) != len(tt.want) {
				t.Fatalf("got %d calculators, want %d", len(calcs), len(tt.want))
			}
			for i, c := range calcs {
				if c.Name() != tt.want[i] {
					t.Errorf("calculator %d = %q, want %q", i, c.Name(), tt.want[i])
				}
			}
		})
	}
}
