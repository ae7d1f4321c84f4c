package cohort

import (
	"fmt"
	"math"

	"yhstat/internal/dataset"
)

// ratio approximation search space: denominators 1..10 with early accept
// below this reconstruction error. The search space is part of the contract;
// the chosen ratio is user-visible.
const (
	maxRatioDenominator = 10
	ratioAcceptError    = 0.01
)

// RatioStats describes the gender split of a student population.
type RatioStats struct {
	Women        float64 `json:"women"`
	Men          float64 `json:"men"`
	WomenPercent float64 `json:"women_percent"`
	MenPercent   float64 `json:"men_percent"`
	RatioWomen   int     `json:"ratio_women"`
	RatioMen     int     `json:"ratio_men"`
	Ratio        string  `json:"ratio"`
}

// GenderRatio computes percentage shares and a small-integer approximation
// of the women:men split. With both counts zero every stat is 0 and the
// ratio renders as "0:0".
func GenderRatio(women, men float64) RatioStats {
	total := women + men
	if total == 0 {
		return RatioStats{Ratio: "0:0"}
	}

	womenShare := women / total
	menShare := men / total

	stats := RatioStats{
		Women:        women,
		Men:          men,
		WomenPercent: dataset.Percent(women, total),
		MenPercent:   dataset.Percent(men, total),
	}
	stats.RatioWomen, stats.RatioMen = approximateRatio(womenShare, menShare)
	stats.Ratio = fmt.Sprintf("%d:%d", stats.RatioWomen, stats.RatioMen)
	return stats
}

// approximateRatio brute-forces small-integer ratios: for each denominator
// 1..10 the numerators are the rounded share multiples; pairs with a zero
// side are skipped; candidates are scored by the absolute error between the
// reconstructed and true shares, keeping the lowest and accepting
// immediately below the error cutoff. Deliberately not a continued-fraction
// algorithm.
func approximateRatio(womenShare, menShare float64) (int, int) {
	bestW, bestM := 0, 0
	bestErr := math.Inf(1)
	for den := 1; den <= maxRatioDenominator; den++ {
		w := int(math.Round(womenShare * float64(den)))
		m := int(math.Round(menShare * float64(den)))
		if w == 0 || m == 0 {
			continue
		}
		errSum := math.Abs(float64(w)/float64(den)-womenShare) +
			math.Abs(float64(m)/float64(den)-menShare)
		if errSum < bestErr {
			bestErr = errSum
			bestW, bestM = w, m
			if errSum < ratioAcceptError {
				break
			}
		}
	}
	return bestW, bestM
}
