// Command losreport renders the hospital length-of-stay regression
// report: it loads an admissions CSV (optionally staging it through
// PostgreSQL), splits it 80/20, encodes features with training-fitted
// parameters, fits an OLS model of log stay on six predictors, and
// prints evaluation tables to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"losreport/dataset"
	"losreport/feature"
	"losreport/regress"
	"losreport/report"
	"losreport/store"
)

// Analysis constants are fixed by the study design, not configurable.
const (
	splitFrac      = 0.8
	splitSeed      = 68
	residSeed      = 11 // residual histogram sub-sample
	targetSeed     = 50 // target distribution sub-sample
	plotSampleSize = 2000
	histBins       = 10
)

func main() {
	inputFile := flag.String("file", "", "Admissions CSV file")
	pgConn := flag.String("pg", "", "Optional PostgreSQL connection string for staging")
	outFile := flag.String("out", "", "Optional Parquet output for the transformed frame")
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: losreport -file admissions.csv [-pg 'postgres://...'] [-out frame.parquet]")
		os.Exit(1)
	}

	if err := run(context.Background(), *inputFile, *pgConn, *outFile); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, inputFile, pgConn, outFile string) error {
	recs, err := dataset.ReadAll(inputFile)
	if err != nil {
		return fmt.Errorf("load %s: %w", inputFile, err)
	}
	log.Printf("loaded %d admissions from %s", len(recs), inputFile)

	// Optional staging round-trip through Postgres. The session is the
	// run's single data-source handle: opened here, released on every
	// exit path below.
	if pgConn != "" {
		session, err := store.Open(ctx, pgConn)
		if err != nil {
			return fmt.Errorf("open staging store: %w", err)
		}
		defer session.Close()

		copied, err := session.LoadAdmissions(ctx, recs)
		if err != nil {
			return err
		}
		log.Printf("staged %d rows in postgres", copied)

		if recs, err = session.ReadAdmissions(ctx); err != nil {
			return err
		}
	}

	w := os.Stdout

	fmt.Fprintln(w, "=== Dataset overview ===")
	report.Overview(w, recs)
	fmt.Fprintln(w)
	report.Crosstab(w, recs)
	fmt.Fprintln(w)

	train, test, err := dataset.Split(recs, splitFrac, splitSeed)
	if err != nil {
		return err
	}
	log.Printf("split: %d training, %d testing", len(train), len(test))

	params, err := feature.FitParams(train)
	if err != nil {
		return fmt.Errorf("fit imputation params: %w", err)
	}
	log.Printf("bed grade imputation mean: %.4f", params.BedGradeMean)

	trainRows, err := feature.TransformAll(train, params)
	if err != nil {
		return fmt.Errorf("transform training set: %w", err)
	}
	testRows, err := feature.TransformAll(test, params)
	if err != nil {
		return fmt.Errorf("transform test set: %w", err)
	}

	target := make([]float64, len(trainRows))
	for i, r := range trainRows {
		target[i] = r.LogStayMidpoint
	}
	fmt.Fprintln(w, "=== Target distribution (training sample) ===")
	report.Histogram(w, "log_stay_midpoint",
		report.Subsample(target, plotSampleSize, targetSeed), histBins)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Correlations (training) ===")
	report.Correlations(w, trainRows)
	fmt.Fprintln(w)

	trainX, trainY := designMatrix(trainRows)
	model, err := regress.Fit(feature.PredictorNames(), trainX, trainY)
	if err != nil {
		return fmt.Errorf("fit OLS: %w", err)
	}

	fmt.Fprintln(w, "=== Model ===")
	report.CoefficientTable(w, model)
	fmt.Fprintln(w)

	testX, testY := designMatrix(testRows)
	metrics, err := regress.Evaluate(model, testX, testY)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	fmt.Fprintln(w, "=== Evaluation ===")
	report.MetricsTable(w, metrics)
	fmt.Fprintln(w)
	report.Histogram(w, "Test residuals (observed - predicted, log scale)",
		report.Subsample(metrics.Residuals, plotSampleSize, residSeed), histBins)

	if outFile != "" {
		if err := writeFrame(outFile, trainRows, testRows); err != nil {
			return err
		}
		log.Printf("wrote transformed frame to %s", outFile)
	}

	return nil
}

func designMatrix(rows []feature.Row) ([][]float64, []float64) {
	X := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		X[i] = r.Predictors()
		y[i] = r.LogStayMidpoint
	}
	return X, y
}

func writeFrame(path string, trainRows, testRows []feature.Row) error {
	fw, err := store.NewFrameWriter(path)
	if err != nil {
		return err
	}
	if _, err := fw.WriteSubset("train", trainRows); err != nil {
		fw.Close()
		return err
	}
	if _, err := fw.WriteSubset("test", testRows); err != nil {
		fw.Close()
		return err
	}
	return fw.Close()
}
