package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/liserjrqlxue/goUtil/textUtil"
	"github.com/liserjrqlxue/version"
	"github.com/mdobak/go-xerrors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/Sarita-12/Pathogen-Data-Analysis-Training/pkg/mpn"
	"github.com/Sarita-12/Pathogen-Data-Analysis-Training/pkg/report"
	"github.com/Sarita-12/Pathogen-Data-Analysis-Training/pkg/survey"
	"github.com/Sarita-12/Pathogen-Data-Analysis-Training/pkg/tac"
)

var SampleSheetTitle = []string{
	"sample_id",
	"household_id",
	"sample_type",
}

// flag
var (
	outDir = flag.String(
		"o",
		"",
		"output dir, default $PDAT_OUT",
	)
	households = flag.Int(
		"n",
		40,
		"household count; each household contributes one sample per type",
	)
	seed = flag.Uint64(
		"seed",
		1,
		"run seed; survey, enumeration and cards draw on adjacent lanes, default $PDAT_SEED or 1",
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
	workbook = flag.String(
		"xlsx",
		"training_dataset.xlsx",
		"combined workbook file name, empty disables",
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
	if *outDir == "" {
		*outDir = os.Getenv("PDAT_OUT")
	}
	if *outDir == "" {
		flag.Usage()
		log.Fatal("-o required")
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
	simpleUtil.CheckErr(os.MkdirAll(*outDir, 0755))

	// survey, enumeration and cards draw on adjacent seed lanes so each
	// table reproduces independently of the others
	enrolled := survey.Generate(*households, tac.NewSource(*seed))
	samples := survey.SampleSheet(enrolled)
	records := mpn.Generate(samples, tac.NewSource(*seed+1))
	slog.Info("cohort", "households", len(enrolled), "samples", len(samples))

	surveyCSV := fmt.Sprintf("survey_households_%s.csv", *epoch)
	report.WriteTable(
		filepath.Join(*outDir, surveyCSV),
		survey.Title,
		lo.Map(enrolled, func(h survey.Household, _ int) []string { return h.Strings() }),
	)

	mpnCSV := fmt.Sprintf("mpn_enumeration_%s.csv", *epoch)
	report.WriteTable(
		filepath.Join(*outDir, mpnCSV),
		mpn.Title,
		lo.Map(records, func(r mpn.Record, _ int) []string { return r.Strings() }),
	)

	writeSampleSheet(filepath.Join(*outDir, "sample_sheet.tsv"), samples)

	var (
		stats = &report.Stats{}
		sink  = report.Tee{report.CSVSink{Dir: *outDir}, stats}
		wb    *report.Workbook
	)
	if *workbook != "" {
		wb = report.NewWorkbook()
		wb.AddSheet("Survey", survey.Title, lo.Map(enrolled, func(h survey.Household, _ int) []any { return h.Anys() }))
		wb.AddSheet("MPN", mpn.Title, lo.Map(records, func(r mpn.Record, _ int) []any { return r.Anys() }))
		wb.AddLayout("CardLayout", catalog, tac.DefaultGridRows, tac.DefaultGridCols)
		sink = append(sink, wb)
	}

	names, err := tac.EmitAll(samples, tac.Options{
		Catalog: catalog,
		Grid:    tac.DefaultGrid,
		Params:  params,
		Seed:    *seed + 2,
		Label:   *label,
		Epoch:   epochDay,
		Threads: *threads,
		Sink:    sink,
	})
	if err != nil {
		fatal("generate cards", err)
	}

	if wb != nil {
		simpleUtil.CheckErr(wb.Save(filepath.Join(*outDir, *workbook)))
	}

	manifest := report.Manifest{
		RunID:      uuid.NewString(),
		Generated:  time.Now().UTC().Format(time.RFC3339),
		Seed:       *seed,
		Label:      *label,
		Epoch:      *epoch,
		Capacity:   params.Capacity,
		Households: len(enrolled),
		Samples:    len(samples),
		Cards:      len(names),
		Tables:     []string{surveyCSV, mpnCSV, "sample_sheet.tsv"},
		Artifacts:  names,
	}
	if err := report.WriteManifest(filepath.Join(*outDir, "manifest.json"), manifest); err != nil {
		fatal("write manifest", err)
	}

	detected := lo.FilterMap(records, func(r mpn.Record, _ int) (float64, bool) {
		return r.Log10, r.MPN > 0
	})
	meanLog10 := 0.0
	if len(detected) > 0 {
		meanLog10 = stat.Mean(detected, nil)
	}
	slog.Info(
		"summary",
		"run", manifest.RunID,
		"cards", stats.Cards(),
		"mean_positive", stats.MeanRate(),
		"mpn_detects", len(detected),
		"mean_log10_mpn", meanLog10,
	)
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

// writeSampleSheet writes the tsv genTAC reads back, linking the survey
// tables to card generation.
func writeSampleSheet(path string, samples []tac.Sample) {
	sheet := osUtil.Create(path)
	fmtUtil.FprintStringArray(sheet, SampleSheetTitle, "\t")
	for _, s := range samples {
		fmtUtil.Fprintf(sheet, "%s\t%s\t%s\n", s.ID, s.Household, s.Type)
	}
	simpleUtil.CheckErr(sheet.Close())
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", xerrors.New(err))
	os.Exit(1)
}
