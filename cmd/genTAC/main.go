package main

import (
	"encoding/csv"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/liserjrqlxue/goUtil/textUtil"
	"github.com/liserjrqlxue/version"
	"github.com/mdobak/go-xerrors"

	"github.com/Sarita-12/Pathogen-Data-Analysis-Training/pkg/report"
	"github.com/Sarita-12/Pathogen-Data-Analysis-Training/pkg/tac"
)

// flag
var (
	input = flag.String(
		"i",
		"",
		"input sample sheet tsv: sample_id, household_id, sample_type",
	)
	outDir = flag.String(
		"o",
		"",
		"output dir, default $PDAT_OUT or .",
	)
	seed = flag.Uint64(
		"seed",
		1,
		"run seed; card N draws from seed+N, default $PDAT_SEED or 1",
	)
	label = flag.String(
		"label",
		tac.DefaultLabel,
		"assay label embedded in artifact names",
	)
	epoch = flag.String(
		"epoch",
		"20240101",
		"anchor date YYYYMMDD; card N is dated epoch+N days",
	)
	capacity = flag.Int(
		"c",
		0,
		"samples per card before the control, 0 keeps the configured default",
	)
	configPath = flag.String(
		"config",
		"",
		"yaml overlay for panel and simulation tunables",
	)
	prevalence = flag.String(
		"prevalence",
		"",
		"two-column tsv of target -> baseline prevalence overrides",
	)
	threads = flag.Int(
		"t",
		1,
		"cards generated concurrently; output never changes",
	)
	verbose = flag.Bool(
		"v",
		false,
		"debug logging",
	)
)

func init() {
	_ = godotenv.Load()
	flag.Parse()
	if *input == "" {
		flag.Usage()
		log.Fatal("-i required")
	}
	if *outDir == "" {
		*outDir = os.Getenv("PDAT_OUT")
	}
	if *outDir == "" {
		*outDir = "."
	}
	seedFromEnv()
}

// seedFromEnv fills -seed from PDAT_SEED when the flag was not passed.
func seedFromEnv() {
	passed := false
	flag.Visit(func(f *flag.Flag) { passed = passed || f.Name == "seed" })
	env := os.Getenv("PDAT_SEED")
	if passed || env == "" {
		return
	}
	v, err := strconv.ParseUint(env, 10, 64)
	if err != nil {
		log.Fatalf("PDAT_SEED %q: want unsigned integer", env)
	}
	*seed = v
}

func main() {
	version.LogVersion()
	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	epochDay, err := time.Parse("20060102", *epoch)
	if err != nil {
		log.Fatalf("-epoch %q: want YYYYMMDD", *epoch)
	}

	catalog, params := buildAssay()
	samples, err := loadSamples(*input)
	if err != nil {
		fatal("load sample sheet", err)
	}
	slog.Info("sheet", "path", *input, "samples", len(samples))

	simpleUtil.CheckErr(os.MkdirAll(*outDir, 0755))

	names, err := tac.EmitAll(samples, tac.Options{
		Catalog: catalog,
		Grid:    tac.DefaultGrid,
		Params:  params,
		Seed:    *seed,
		Label:   *label,
		Epoch:   epochDay,
		Threads: *threads,
		Sink:    report.CSVSink{Dir: *outDir},
	})
	if err != nil {
		fatal("generate cards", err)
	}

	list := osUtil.Create(filepath.Join(*outDir, "artifacts.txt"))
	for _, name := range names {
		fmtUtil.Fprintln(list, name)
	}
	simpleUtil.CheckErr(list.Close())

	slog.Info("done", "cards", len(names), "out", *outDir)
}

// buildAssay assembles the validated panel and tunables from defaults, the
// optional yaml overlay, and the optional prevalence override table.
func buildAssay() (*tac.Catalog, tac.Params) {
	params := tac.DefaultParams()
	panel := append([]tac.Target(nil), tac.DefaultTargets...)
	controls := append([]tac.Target(nil), tac.DefaultControls...)

	if *configPath != "" {
		cfg, err := tac.LoadConfig(*configPath)
		if err != nil {
			fatal("load config", err)
		}
		panel, controls = cfg.Panel()
		if params, err = cfg.Apply(params); err != nil {
			fatal("apply config", err)
		}
		if cfg.Label != "" && *label == tac.DefaultLabel {
			*label = cfg.Label
		}
	}
	if *capacity > 0 {
		params.Capacity = *capacity
	}
	if *prevalence != "" {
		raw := simpleUtil.HandleError(textUtil.File2Map(*prevalence, "\t", false))
		overrides, err := tac.ParsePrevalence(raw)
		if err != nil {
			fatal("parse prevalence overrides", err)
		}
		if panel, err = tac.ApplyPrevalence(panel, overrides); err != nil {
			fatal("apply prevalence overrides", err)
		}
	}

	catalog, err := tac.NewCatalog(panel, controls)
	if err != nil {
		fatal("build catalog", err)
	}
	slog.Debug("assay", "targets", catalog.Len()-catalog.Controls(), "controls", catalog.Controls())
	for typ, factor := range params.Adjustment {
		slog.Debug("adjustment", "type", typ, "factor", factor)
	}
	return catalog, params
}

// loadSamples reads the tab separated sample sheet, tolerating a header row.
func loadSamples(path string) ([]tac.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer simpleUtil.DeferClose(f)

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = 3
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var samples []tac.Sample
	for i, rec := range records {
		if i == 0 && rec[0] == "sample_id" {
			continue
		}
		typ, err := tac.ParseSampleType(rec[2])
		if err != nil {
			return nil, err
		}
		samples = append(samples, tac.Sample{ID: rec[0], Household: rec[1], Type: typ})
	}
	return samples, nil
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", xerrors.New(err))
	os.Exit(1)
}
