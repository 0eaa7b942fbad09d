// Package regress fits ordinary-least-squares models over the cleaned
// rating set from a declarative predictor specification.
//
// A Spec names a response column and a list of terms: numeric columns,
// categorical columns with an explicit reference level, and pairwise
// interactions. Categorical baselines are always caller-chosen; there is no
// alphabetical default, so coefficients stay reproducible and
// intention-revealing.
package regress

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/brewlytics/cupping/internal/model"
)

// TermKind discriminates the three predictor term forms.
type TermKind int

// Predictor term kinds.
const (
	TermNumeric TermKind = iota
	TermCategorical
	TermInteraction
)

// Term is one predictor in a model specification.
type Term struct {
	Column    string
	Reference string // categorical baseline level; TermCategorical only
	With      string // interaction partner; TermInteraction only
	Kind      TermKind
}

// Numeric builds a raw continuous predictor term.
func Numeric(column string) Term {
	return Term{Kind: TermNumeric, Column: column}
}

// Categorical builds an indicator-expanded predictor term with an explicit
// reference level.
func Categorical(column, reference string) Term {
	return Term{Kind: TermCategorical, Column: column, Reference: reference}
}

// Interaction builds a cross-product term between two named predictors.
// Each side must also appear as a main-effect term in the same Spec.
func Interaction(left, right string) Term {
	return Term{Kind: TermInteraction, Column: left, With: right}
}

// Spec declares one OLS model: a response column and its predictor terms.
type Spec struct {
	Name     string
	Response string
	Terms    []Term
}

// design is the materialized matrix form of a Spec over a concrete dataset.
type design struct {
	names []string // one per column of x, including the intercept
	x     *mat.Dense
	y     *mat.VecDense
}

// columnsUsed returns every dataset column the spec touches.
func (s *Spec) columnsUsed() []string {
	seen := map[string]bool{s.Response: true}
	cols := []string{s.Response}
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			cols = append(cols, c)
		}
	}
	for _, t := range s.Terms {
		add(t.Column)
		add(t.With)
	}
	return cols
}

// validate checks column names and reference levels before any row work.
func (s *Spec) validate() error {
	if !model.IsNumericColumn(s.Response) {
		return fmt.Errorf("unknown response column %q", s.Response)
	}
	refs := make(map[string]string)
	for _, t := range s.Terms {
		switch t.Kind {
		case TermNumeric:
			if !model.IsNumericColumn(t.Column) {
				return fmt.Errorf("unknown numeric predictor %q", t.Column)
			}
		case TermCategorical:
			if !model.IsCategoricalColumn(t.Column) {
				return fmt.Errorf("unknown categorical predictor %q", t.Column)
			}
			if t.Reference == "" {
				return fmt.Errorf("categorical predictor %q has no reference level", t.Column)
			}
			refs[t.Column] = t.Reference
		case TermInteraction:
			for _, c := range []string{t.Column, t.With} {
				if !model.IsNumericColumn(c) && !model.IsCategoricalColumn(c) {
					return fmt.Errorf("unknown interaction predictor %q", c)
				}
			}
		}
	}
	for _, t := range s.Terms {
		if t.Kind != TermInteraction {
			continue
		}
		for _, c := range []string{t.Column, t.With} {
			if model.IsCategoricalColumn(c) {
				if _, ok := refs[c]; !ok {
					return fmt.Errorf("interaction references categorical %q without a main-effect term", c)
				}
			}
		}
	}
	return nil
}

// completeCases returns the rows where every column the spec uses is
// non-null. Each model filters independently: a row missing altitude is
// still usable by a model that never reads altitude.
func (s *Spec) completeCases(ratings []model.Rating) []*model.Rating {
	cols := s.columnsUsed()
	var rows []*model.Rating
	for i := range ratings {
		r := &ratings[i]
		ok := true
		for _, col := range cols {
			if model.IsNumericColumn(col) {
				if _, has := model.NumericValue(r, col); !has {
					ok = false
					break
				}
			} else {
				if _, has := model.CategoricalValue(r, col); !has {
					ok = false
					break
				}
			}
		}
		if ok {
			rows = append(rows, r)
		}
	}
	return rows
}

// levelsFor collects the observed non-reference levels of a categorical
// column across the complete-case rows, sorted for deterministic column
// order.
func levelsFor(rows []*model.Rating, column, reference string) ([]string, error) {
	seen := make(map[string]bool)
	refSeen := false
	for _, r := range rows {
		v, _ := model.CategoricalValue(r, column)
		if v == reference {
			refSeen = true
			continue
		}
		seen[v] = true
	}
	if !refSeen {
		return nil, fmt.Errorf("reference level %q of %q not observed in fitted rows", reference, column)
	}
	levels := make([]string, 0, len(seen))
	for l := range seen {
		levels = append(levels, l)
	}
	sort.Strings(levels)
	return levels, nil
}

// buildDesign materializes the spec into an intercept-first design matrix
// plus response vector over the complete-case rows.
func (s *Spec) buildDesign(rows []*model.Rating) (*design, error) {
	refs := make(map[string]string)
	for _, t := range s.Terms {
		if t.Kind == TermCategorical {
			refs[t.Column] = t.Reference
		}
	}

	// Each predictor expands to one or more named columns; expansions
	// return the value of each column for a given row.
	names := []string{"(Intercept)"}
	expansions := []func(*model.Rating) []float64{
		func(*model.Rating) []float64 { return []float64{1} },
	}

	expand := func(column string) ([]string, func(*model.Rating) []float64, error) {
		if model.IsNumericColumn(column) {
			return []string{column}, func(r *model.Rating) []float64 {
				v, _ := model.NumericValue(r, column)
				return []float64{v}
			}, nil
		}
		reference := refs[column]
		levels, err := levelsFor(rows, column, reference)
		if err != nil {
			return nil, nil, err
		}
		colNames := make([]string, len(levels))
		for i, l := range levels {
			colNames[i] = fmt.Sprintf("%s=%s", column, l)
		}
		return colNames, func(r *model.Rating) []float64 {
			v, _ := model.CategoricalValue(r, column)
			out := make([]float64, len(levels))
			for i, l := range levels {
				if v == l {
					out[i] = 1
				}
			}
			return out
		}, nil
	}

	for _, t := range s.Terms {
		switch t.Kind {
		case TermNumeric, TermCategorical:
			colNames, fn, err := expand(t.Column)
			if err != nil {
				return nil, err
			}
			names = append(names, colNames...)
			expansions = append(expansions, fn)

		case TermInteraction:
			leftNames, leftFn, err := expand(t.Column)
			if err != nil {
				return nil, err
			}
			rightNames, rightFn, err := expand(t.With)
			if err != nil {
				return nil, err
			}
			for i := range leftNames {
				for j := range rightNames {
					names = append(names, leftNames[i]+":"+rightNames[j])
				}
			}
			li, ri := len(leftNames), len(rightNames)
			expansions = append(expansions, func(r *model.Rating) []float64 {
				lv, rv := leftFn(r), rightFn(r)
				out := make([]float64, 0, li*ri)
				for i := 0; i < li; i++ {
					for j := 0; j < ri; j++ {
						out = append(out, lv[i]*rv[j])
					}
				}
				return out
			})
		}
	}

	n, p := len(rows), len(names)
	x := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i, r := range rows {
		col := 0
		for _, fn := range expansions {
			for _, v := range fn(r) {
				x.Set(i, col, v)
				col++
			}
		}
		yv, _ := model.NumericValue(r, s.Response)
		y.SetVec(i, yv)
	}

	// Guard against constant zero columns before factorization; QR would
	// otherwise surface them as NaN coefficients instead of a clean error.
	for j := 0; j < p; j++ {
		allZero := true
		for i := 0; i < n; i++ {
			if x.At(i, j) != 0 {
				allZero = false
				break
			}
		}
		if allZero {
			return nil, &RankDeficiencyError{Column: names[j]}
		}
	}

	return &design{names: names, x: x, y: y}, nil
}
