// Package testkit checks analysis results against the properties every
// well-formed result must satisfy. The driver runs these checks on demand
// (--check-invariants) and tests use them as oracles.
package testkit

import (
	"fmt"

	"sonar/internal/analysis"
	"sonar/internal/rating"
)

// CheckFilter runs the rating invariants on a finished filter run over
// inputLen sequences:
// 1) the survivor has the report width and its decimal value matches Value
// 2) there are at most Width transitions, at positions 0, 1, 2, ...
// 3) every transition narrows: After <= Before, Before equals the previous After
// 4) each table counts exactly the candidates present and the target agrees
// with the selector and with the survivor
// 5) the run ends with exactly one candidate
func CheckFilter(res rating.Result, inputLen int) error {
	if res.Width <= 0 {
		return fmt.Errorf("non-positive width %d", res.Width)
	}
	if res.Survivor.Len() != res.Width {
		return fmt.Errorf("survivor width %d, report width %d", res.Survivor.Len(), res.Width)
	}
	value, err := res.Survivor.Decimal()
	if err != nil {
		return fmt.Errorf("survivor decimal: %w", err)
	}
	if value != res.Value {
		return fmt.Errorf("value %d does not match survivor %s (%d)", res.Value, res.Survivor, value)
	}
	if len(res.Steps) > res.Width {
		return fmt.Errorf("%d transitions exceed width %d", len(res.Steps), res.Width)
	}
	if len(res.Steps) == 0 {
		if inputLen != 1 {
			return fmt.Errorf("no transitions over %d sequences", inputLen)
		}
		return nil
	}

	before := inputLen
	for i, st := range res.Steps {
		if st.Position != i {
			return fmt.Errorf("step %d at position %d", i, st.Position)
		}
		if st.Before != before {
			return fmt.Errorf("step %d starts with %d candidates, previous step left %d", i, st.Before, before)
		}
		if st.After > st.Before {
			return fmt.Errorf("step %d grows the candidate set: %d -> %d", i, st.Before, st.After)
		}
		if st.After < 1 {
			return fmt.Errorf("step %d empties the candidate set", i)
		}
		if st.Table.Total() != st.Before {
			return fmt.Errorf("step %d table %s counts %d of %d candidates", i, st.Table, st.Table.Total(), st.Before)
		}
		if want := res.Selector.Target(st.Table); st.Target != want {
			return fmt.Errorf("step %d target %s, selector %s picks %s", i, st.Target, res.Selector, want)
		}
		if res.Survivor.At(st.Position) != st.Target {
			return fmt.Errorf("survivor %s disagrees with step %d target %s", res.Survivor, i, st.Target)
		}
		// все шаги, кроме последнего, оставляют больше одного кандидата
		if i < len(res.Steps)-1 && st.After == 1 {
			return fmt.Errorf("step %d already isolated the survivor but the run continued", i)
		}
		before = st.After
	}
	if before != 1 {
		return fmt.Errorf("run ended with %d candidates", before)
	}
	return nil
}

// CheckPower verifies that epsilon is the complement of gamma and that the
// reported values are the decimal readings and their product.
func CheckPower(p analysis.Power) error {
	if !p.Epsilon.Equal(p.Gamma.Complement()) {
		return fmt.Errorf("epsilon %s is not the complement of gamma %s", p.Epsilon, p.Gamma)
	}
	if len(p.Tables) != p.Gamma.Len() {
		return fmt.Errorf("%d tables for width %d", len(p.Tables), p.Gamma.Len())
	}
	g, err := p.Gamma.Decimal()
	if err != nil {
		return err
	}
	e, err := p.Epsilon.Decimal()
	if err != nil {
		return err
	}
	if g != p.GammaValue || e != p.EpsilonValue {
		return fmt.Errorf("values %d/%d do not match %s/%s", p.GammaValue, p.EpsilonValue, p.Gamma, p.Epsilon)
	}
	if p.Value != analysis.Multiply(g, e) {
		return fmt.Errorf("power %s != %d * %d", p.Value, g, e)
	}
	return nil
}

// CheckLifeSupport runs CheckFilter on both ratings and checks the product.
func CheckLifeSupport(ls analysis.LifeSupport, inputLen int) error {
	if err := CheckFilter(ls.Oxygen, inputLen); err != nil {
		return fmt.Errorf("oxygen: %w", err)
	}
	if err := CheckFilter(ls.CO2, inputLen); err != nil {
		return fmt.Errorf("co2: %w", err)
	}
	if ls.Oxygen.Selector != rating.UseMostCommon || ls.CO2.Selector != rating.UseLeastCommon {
		return fmt.Errorf("selectors %s/%s", ls.Oxygen.Selector, ls.CO2.Selector)
	}
	if ls.Value != analysis.Multiply(ls.Oxygen.Value, ls.CO2.Value) {
		return fmt.Errorf("life support %s != %d * %d", ls.Value, ls.Oxygen.Value, ls.CO2.Value)
	}
	return nil
}
