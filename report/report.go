// Package report renders the analysis as plain text: dataset overview,
// crosstabs, correlations, the coefficient table, evaluation metrics
// and a residual histogram. Purely presentational; all numbers are
// computed upstream except simple counts and Pearson correlations.
package report

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"

	"losreport/dataset"
	"losreport/feature"
	"losreport/regress"
)

// Overview prints distinct-value counts with percentages for the three
// categorical columns, in a fixed order so output is deterministic.
func Overview(w io.Writer, recs []dataset.Record) {
	n := len(recs)
	fmt.Fprintf(w, "Admissions: %d rows\n\n", n)

	fmt.Fprintln(w, "Stay_Days distribution")
	stayCounts := make(map[dataset.StayBucket]int)
	for _, r := range recs {
		stayCounts[r.Stay]++
	}
	for _, b := range dataset.StayBuckets() {
		printCount(w, b.String(), stayCounts[b], n)
	}

	fmt.Fprintln(w, "\nIllness_Severity distribution")
	sevCounts := make(map[dataset.Severity]int)
	for _, r := range recs {
		sevCounts[r.Severity]++
	}
	for _, s := range []dataset.Severity{dataset.SeverityMinor, dataset.SeverityModerate, dataset.SeverityExtreme} {
		printCount(w, s.String(), sevCounts[s], n)
	}

	fmt.Fprintln(w, "\nType_of_Admission distribution")
	admCounts := make(map[dataset.AdmissionType]int)
	missingGrade := 0
	for _, r := range recs {
		admCounts[r.Admission]++
		if r.BedGrade == nil {
			missingGrade++
		}
	}
	for _, a := range []dataset.AdmissionType{dataset.AdmissionEmergency, dataset.AdmissionUrgent, dataset.AdmissionTrauma} {
		printCount(w, a.String(), admCounts[a], n)
	}

	fmt.Fprintf(w, "\nBed_Grade missing: %d (%.1f%%)\n", missingGrade, pct(missingGrade, n))
}

func printCount(w io.Writer, label string, count, total int) {
	fmt.Fprintf(w, "  %-20s %7d  %5.1f%%\n", label, count, pct(count, total))
}

func pct(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(count) / float64(total)
}

// Crosstab prints an illness severity × admission type contingency
// table of row counts.
func Crosstab(w io.Writer, recs []dataset.Record) {
	sevs := []dataset.Severity{dataset.SeverityMinor, dataset.SeverityModerate, dataset.SeverityExtreme}
	adms := []dataset.AdmissionType{dataset.AdmissionEmergency, dataset.AdmissionUrgent, dataset.AdmissionTrauma}

	counts := make(map[dataset.Severity]map[dataset.AdmissionType]int)
	for _, s := range sevs {
		counts[s] = make(map[dataset.AdmissionType]int)
	}
	for _, r := range recs {
		counts[r.Severity][r.Admission]++
	}

	fmt.Fprintln(w, "Illness_Severity x Type_of_Admission")
	fmt.Fprintf(w, "  %-10s", "")
	for _, a := range adms {
		fmt.Fprintf(w, " %10s", a)
	}
	fmt.Fprintln(w)
	for _, s := range sevs {
		fmt.Fprintf(w, "  %-10s", s)
		for _, a := range adms {
			fmt.Fprintf(w, " %10d", counts[s][a])
		}
		fmt.Fprintln(w)
	}
}

// Correlations prints the Pearson correlation of each predictor with
// the log stay target.
func Correlations(w io.Writer, rows []feature.Row) {
	n := len(rows)
	target := make([]float64, n)
	for i, r := range rows {
		target[i] = r.LogStayMidpoint
	}

	fmt.Fprintln(w, "Correlation with log_stay_midpoint")
	names := feature.PredictorNames()
	for j, name := range names {
		col := make([]float64, n)
		for i, r := range rows {
			col[i] = r.Predictors()[j]
		}
		fmt.Fprintf(w, "  %-24s %+.4f\n", name, stat.Correlation(col, target, nil))
	}
}

// CoefficientTable prints per-term estimates, standard errors,
// t statistics, p-values and the 95% confidence interval.
func CoefficientTable(w io.Writer, m *regress.Model) {
	fmt.Fprintf(w, "OLS fit: n=%d, residual df=%d\n", m.N, m.DF)
	fmt.Fprintf(w, "  %-24s %12s %10s %8s %8s %20s\n",
		"term", "coef", "std err", "t", "P>|t|", "[0.025  0.975]")
	for _, t := range m.Terms {
		lo, hi := t.ConfInt95()
		fmt.Fprintf(w, "  %-24s %12.4f %10.4f %8.3f %8.3f   [%8.4f %8.4f]\n",
			t.Name, t.Coef, t.StdErr, t.TStat, t.PValue, lo, hi)
	}
}

// MetricsTable prints log-scale evaluation metrics, then the
// exponentiated values with the approximation caveat spelled out.
func MetricsTable(w io.Writer, met regress.Metrics) {
	fmt.Fprintf(w, "Test-set metrics (log-day scale, n=%d)\n", met.N)
	fmt.Fprintf(w, "  %-14s %10.4f\n", "R2", met.R2)
	fmt.Fprintf(w, "  %-14s %10.4f\n", "Adj R2", met.AdjR2)
	fmt.Fprintf(w, "  %-14s %10.4f\n", "MAE", met.MAE)
	fmt.Fprintf(w, "  %-14s %10.4f\n", "MSE", met.MSE)
	fmt.Fprintf(w, "  %-14s %10.4f\n", "RMSE", met.RMSE)

	fmt.Fprintln(w, "\nExponentiated metrics (approximation only: exp of a")
	fmt.Fprintln(w, "log-scale mean is not the day-scale metric)")
	fmt.Fprintf(w, "  %-14s %10.4f\n", "exp(MAE)", regress.ExpScale(met.MAE))
	fmt.Fprintf(w, "  %-14s %10.4f\n", "exp(RMSE)", regress.ExpScale(met.RMSE))
}
