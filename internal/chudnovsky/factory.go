package chudnovsky

import (
	"fmt"
	"sort"
	"sync"
)

// CalculatorFactory looks up calculators by name.
type CalculatorFactory interface {
	Get(name string) (Calculator, error)
	List() []string
	GetAll() []Calculator
}

// DefaultFactory is a registry of calculators keyed by name.
type DefaultFactory struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
}

// NewDefaultFactory returns a factory with the "parity" and "negbase"
// calculators registered.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{calculators: make(map[string]Calculator)}
	f.Register(NewSeriesCalculator(SignByParity))
	f.Register(NewSeriesCalculator(SignByNegativeBase))
	return f
}

// Register adds calc under its name, replacing any previous entry.
func (f *DefaultFactory) Register(calc Calculator) {
	f.mu.Lock()
	f.calculators[calc.Name()] = calc
	f.mu.Unlock()
}

// Get returns the calculator registered under name.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	calc, ok := f.calculators[name]
	if !ok {
		return nil, fmt.Errorf("unknown calculator %q (available: %v)", name, f.listLocked())
	}
	return calc, nil
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.listLocked()
}

// GetAll returns every calculator in name order.
func (f *DefaultFactory) GetAll() []Calculator {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := f.listLocked()
	out := make([]Calculator, 0, len(names))
	for _, n := range names {
		out = append(out, f.calculators[n])
	}
	return out
}

func (f *DefaultFactory) listLocked() []string {
	names := make([]string, 0, len(f.calculators))
	for n := range f.calculators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
