package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/brewlytics/cupping/internal/model"
)

// rankTolerance scales the cutoff below which a diagonal entry of the QR
// R factor marks the design matrix as rank deficient.
const rankTolerance = 1e-10

// Coefficient is one fitted model term.
type Coefficient struct {
	Name     string
	Estimate float64
	StdErr   float64
	TValue   float64
	PValue   float64
}

// Result holds everything the reporter needs from one OLS fit.
type Result struct {
	Name         string
	Response     string
	Coefficients []Coefficient
	Fitted       []float64
	Residuals    []float64
	VIF          map[string]float64
	RSquared     float64
	AdjRSquared  float64
	Observations int
	DF           int
}

// Fit estimates the spec's model over the cleaned ratings by ordinary
// least squares. Rows with a null value in any column the spec uses are
// excluded from this fit only.
func Fit(ratings []model.Rating, spec Spec) (*Result, error) {
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("invalid model spec %s: %w", spec.Name, err)
	}

	rows := spec.completeCases(ratings)
	if len(rows) == 0 {
		return nil, &InsufficientDataError{Observations: 0, Parameters: len(spec.Terms) + 1}
	}

	d, err := spec.buildDesign(rows)
	if err != nil {
		return nil, err
	}
	return fitDesign(d, spec)
}

func fitDesign(d *design, spec Spec) (*Result, error) {
	n, p := d.x.Dims()
	df := n - p
	if df <= 0 {
		return nil, &InsufficientDataError{Observations: n, Parameters: p}
	}

	var qr mat.QR
	qr.Factorize(d.x)

	if col := deficientColumn(&qr, d.names); col >= 0 {
		return nil, &RankDeficiencyError{Column: d.names[col]}
	}

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, d.y); err != nil {
		return nil, &RankDeficiencyError{}
	}

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	var fittedVec mat.VecDense
	fittedVec.MulVec(d.x, &beta)
	rss := 0.0
	for i := 0; i < n; i++ {
		fitted[i] = fittedVec.AtVec(i)
		residuals[i] = d.y.AtVec(i) - fitted[i]
		rss += residuals[i] * residuals[i]
	}

	meanY := stat.Mean(d.y.RawVector().Data, nil)
	tss := 0.0
	for i := 0; i < n; i++ {
		dev := d.y.AtVec(i) - meanY
		tss += dev * dev
	}

	r2 := 1 - rss/tss
	adjR2 := 1 - (1-r2)*float64(n-1)/float64(df)
	sigma2 := rss / float64(df)

	// Coefficient covariance is sigma^2 (X'X)^-1; the rank check above
	// guarantees the inverse exists.
	var xtx, xtxInv mat.Dense
	xtx.Mul(d.x.T(), d.x)
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, &RankDeficiencyError{}
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	coefs := make([]Coefficient, p)
	for j := 0; j < p; j++ {
		est := beta.AtVec(j)
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		tv := est / se
		coefs[j] = Coefficient{
			Name:     d.names[j],
			Estimate: est,
			StdErr:   se,
			TValue:   tv,
			PValue:   2 * (1 - tDist.CDF(math.Abs(tv))),
		}
	}

	return &Result{
		Name:         spec.Name,
		Response:     spec.Response,
		Coefficients: coefs,
		Fitted:       fitted,
		Residuals:    residuals,
		VIF:          varianceInflation(d),
		RSquared:     r2,
		AdjRSquared:  adjR2,
		Observations: n,
		DF:           df,
	}, nil
}

// deficientColumn returns the index of the first near-zero diagonal entry
// of R, or -1 for a full-rank factorization.
func deficientColumn(qr *mat.QR, names []string) int {
	var r mat.Dense
	qr.RTo(&r)

	maxDiag := 0.0
	p := len(names)
	for j := 0; j < p; j++ {
		if v := math.Abs(r.At(j, j)); v > maxDiag {
			maxDiag = v
		}
	}
	for j := 0; j < p; j++ {
		if math.Abs(r.At(j, j)) <= rankTolerance*maxDiag {
			return j
		}
	}
	return -1
}

// varianceInflation computes the VIF of every non-intercept design column:
// 1 / (1 - R^2) of that column regressed on all the others. Values over 10
// conventionally flag actionable multicollinearity; the full map is exposed
// either way.
func varianceInflation(d *design) map[string]float64 {
	n, p := d.x.Dims()
	vif := make(map[string]float64, p-1)

	for j := 1; j < p; j++ {
		sub := mat.NewDense(n, p-1, nil)
		target := mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			col := 0
			for k := 0; k < p; k++ {
				if k == j {
					continue
				}
				sub.Set(i, col, d.x.At(i, k))
				col++
			}
			target.SetVec(i, d.x.At(i, j))
		}

		var qr mat.QR
		qr.Factorize(sub)
		var beta mat.VecDense
		if err := qr.SolveVecTo(&beta, false, target); err != nil {
			vif[d.names[j]] = math.Inf(1)
			continue
		}

		var fitted mat.VecDense
		fitted.MulVec(sub, &beta)
		meanT := stat.Mean(target.RawVector().Data, nil)
		rss, tss := 0.0, 0.0
		for i := 0; i < n; i++ {
			res := target.AtVec(i) - fitted.AtVec(i)
			rss += res * res
			dev := target.AtVec(i) - meanT
			tss += dev * dev
		}
		if tss == 0 {
			vif[d.names[j]] = math.Inf(1)
			continue
		}
		r2 := 1 - rss/tss
		if r2 >= 1 {
			vif[d.names[j]] = math.Inf(1)
			continue
		}
		vif[d.names[j]] = 1 / (1 - r2)
	}

	return vif
}
