package orchestration

import (
	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/config"
)

// GetCalculatorsToRun returns the calculators selected by cfg.Variant:
// every registered calculator in name order for "all", otherwise the single
// named one. An unknown name yields nil.
func GetCalculatorsToRun(cfg config.AppConfig, factory chudnovsky.CalculatorFactory) []chudnovsky.Calculator {
	if cfg.Variant == config.VariantAll {
		return factory.GetAll()
	}
	if calc, err := factory.Get(cfg.Variant); err == nil {
		return []chudnovsky.Calculator{calc}
	}
	return nil
}
