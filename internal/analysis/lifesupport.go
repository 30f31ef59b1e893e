package analysis

import (
	"context"

	"sonar/internal/bits"
	"sonar/internal/rating"
	"sonar/internal/report"
	"sonar/internal/trace"
)

// LifeSupport holds both rating runs and their product.
type LifeSupport struct {
	Oxygen rating.Result
	CO2    rating.Result
	Value  Product
}

// AnalyzeLifeSupport runs the oxygen and CO2 filters over independent copies
// of the report and multiplies the surviving readings.
func AnalyzeLifeSupport(ctx context.Context, r *report.Report) (LifeSupport, error) {
	if r == nil {
		return LifeSupport{}, bits.ErrEmptyInput
	}
	ctx, span := trace.Start(ctx, trace.ScopePass, "life-support")

	oxygen, err := rating.Filter(ctx, r.Sequences(), rating.UseMostCommon)
	if err != nil {
		span.End("error")
		return LifeSupport{}, err
	}
	co2, err := rating.Filter(ctx, r.Sequences(), rating.UseLeastCommon)
	if err != nil {
		span.End("error")
		return LifeSupport{}, err
	}
	value := Multiply(oxygen.Value, co2.Value)

	span.End(value.String())
	return LifeSupport{Oxygen: oxygen, CO2: co2, Value: value}, nil
}

// LifeSupportRating returns oxygen × CO2 for r.
func LifeSupportRating(r *report.Report) (Product, error) {
	ls, err := AnalyzeLifeSupport(context.Background(), r)
	if err != nil {
		return Product{}, err
	}
	return ls.Value, nil
}
