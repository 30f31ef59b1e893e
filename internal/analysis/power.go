package analysis

import (
	"context"

	"sonar/internal/bits"
	"sonar/internal/freq"
	"sonar/internal/report"
	"sonar/internal/trace"
)

// Power holds the per-position readings and their product.
type Power struct {
	Tables       []freq.Table
	Gamma        bits.Sequence
	Epsilon      bits.Sequence
	GammaValue   uint64
	EpsilonValue uint64
	Value        Product
}

// AnalyzePower aggregates the whole report once and derives gamma (most
// common bit per position) and epsilon (least common bit per position).
func AnalyzePower(ctx context.Context, r *report.Report) (Power, error) {
	if r == nil {
		return Power{}, bits.ErrEmptyInput
	}
	_, span := trace.Start(ctx, trace.ScopePass, "power")

	tables, err := freq.Analyze(r.Sequences())
	if err != nil {
		span.End("error")
		return Power{}, err
	}

	p := Power{
		Tables:  tables,
		Gamma:   freq.Derive(tables, freq.MostCommon),
		Epsilon: freq.Derive(tables, freq.LeastCommon),
	}
	if p.GammaValue, err = p.Gamma.Decimal(); err != nil {
		span.End("error")
		return Power{}, err
	}
	if p.EpsilonValue, err = p.Epsilon.Decimal(); err != nil {
		span.End("error")
		return Power{}, err
	}
	p.Value = Multiply(p.GammaValue, p.EpsilonValue)

	span.WithExtra("gamma", p.Gamma.String()).
		WithExtra("epsilon", p.Epsilon.String()).
		End(p.Value.String())
	return p, nil
}

// PowerConsumption returns gamma × epsilon for r.
func PowerConsumption(r *report.Report) (Product, error) {
	p, err := AnalyzePower(context.Background(), r)
	if err != nil {
		return Product{}, err
	}
	return p.Value, nil
}
