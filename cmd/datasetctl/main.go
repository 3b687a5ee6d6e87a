package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	flag "github.com/spf13/pflag"

	"github.com/hivellm/expert-neo4j/internal/dataset"
	"github.com/hivellm/expert-neo4j/internal/evalcases"
	vlog "github.com/hivellm/expert-neo4j/internal/log"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "datasetctl: %v\n", err)
		os.Exit(2)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return usageError()
	}

	switch args[0] {
	case "build":
		return runBuild(args[1:])
	case "report":
		return runReport(args[1:])
	case "drift":
		return runDrift(args[1:])
	case "cases":
		return runCases(args[1:])
	default:
		return usageError()
	}
}

func usageError() error {
	return errors.New("usage: datasetctl <build|report|drift|cases> [flags]")
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to dataset build config yaml")
	outDir := fs.String("out", "", "output directory")
	verbose := fs.Bool("verbose", false, "log pipeline stages to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" || *outDir == "" {
		return errors.New("build requires --config and --out")
	}

	logger := &vlog.Logger{Enabled: *verbose, W: os.Stderr}

	cfg, err := dataset.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	logger.Printf("building dataset %s from %d sources", cfg.DatasetVersion, len(cfg.Sources))

	result, err := dataset.Build(cfg)
	if err != nil {
		return err
	}
	logger.Printf("loaded %d examples, kept %d", result.Report.ExamplesLoaded, result.Report.ExamplesKept)

	if result.Report.Rebalance != nil {
		for _, warning := range result.Report.Rebalance.Warnings {
			logger.Warnf("%s", warning)
		}
	}

	trainPath := filepath.Join(*outDir, "train.jsonl")
	reportPath := filepath.Join(*outDir, "report.json")

	if err := dataset.WriteExamples(trainPath, result.Examples); err != nil {
		return err
	}
	if err := dataset.WriteJSON(reportPath, result.Report); err != nil {
		return err
	}

	fmt.Printf("train:  %s\n", trainPath)
	fmt.Printf("report: %s\n", reportPath)
	return nil
}

func runReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	dataPath := fs.String("data", "", "path to a train.jsonl dataset")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dataPath == "" {
		return errors.New("report requires --data")
	}

	examples, invalid, err := dataset.ReadExamples(*dataPath)
	if err != nil {
		return err
	}

	printDistribution(dataset.Distribute(examples))
	if invalid > 0 {
		fmt.Printf("invalid lines skipped: %d\n", invalid)
	}
	return nil
}

func printDistribution(dist dataset.Distribution) {
	type row struct {
		category dataset.Category
		count    int
	}
	rows := make([]row, 0, len(dist.Counts))
	for category, count := range dist.Counts {
		rows = append(rows, row{category: category, count: count})
	}
	sort.Slice(rows, func(i int, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].category < rows[j].category
	})

	fmt.Printf("total examples: %d\n", dist.Total)
	for _, r := range rows {
		fmt.Printf("  %-8s %6d  (%.1f%%)\n", r.category, r.count, dist.Share(r.category)*100)
	}
}

func runDrift(args []string) error {
	fs := flag.NewFlagSet("drift", flag.ContinueOnError)
	baselinePath := fs.String("baseline", "", "path to baseline report.json")
	candidatePath := fs.String("candidate", "", "path to candidate report.json")
	outPath := fs.String("out", "", "path to write drift report json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *baselinePath == "" || *candidatePath == "" || *outPath == "" {
		return errors.New("drift requires --baseline, --candidate, and --out")
	}

	baseline, err := dataset.ReadBuildReport(*baselinePath)
	if err != nil {
		return err
	}
	candidate, err := dataset.ReadBuildReport(*candidatePath)
	if err != nil {
		return err
	}

	drift := dataset.CompareReports(baseline, candidate)
	if err := dataset.WriteJSON(*outPath, drift); err != nil {
		return err
	}
	fmt.Printf("drift report: %s\n", *outPath)
	return nil
}

func runCases(args []string) error {
	fs := flag.NewFlagSet("cases", flag.ContinueOnError)
	outPath := fs.String("out", "", "path to write the comparison prompt suite jsonl")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outPath == "" {
		return errors.New("cases requires --out")
	}

	if err := evalcases.Write(*outPath); err != nil {
		return err
	}
	fmt.Printf("cases: %s\n", *outPath)
	return nil
}
