// forecast-fuse fuses a set of per-model forecasts for one location into a
// consensus forecast with confidence scores and a narrative brief.
//
// It reads a JSON array of model forecasts from a file (or stdin), runs
// the aggregation pipeline, and writes a single JSON document to stdout.
// Fetching forecasts and rendering output are both out of scope; this is
// an offline transform over already-assembled input.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/forecastfusion/forecastfusion/internal/aggregate"
	"github.com/forecastfusion/forecastfusion/internal/confidence"
	"github.com/forecastfusion/forecastfusion/internal/log"
	"github.com/forecastfusion/forecastfusion/internal/narrative"
	"github.com/forecastfusion/forecastfusion/internal/wx"
)

type output struct {
	Forecast        *aggregate.Forecast            `json:"forecast"`
	Confidence      map[string]wx.ConfidenceResult `json:"confidence"`
	DailyConfidence []wx.ConfidenceResult          `json:"dailyConfidence"`
	Narrative       narrative.Summary              `json:"narrative"`
}

func main() {
	var (
		input      = flag.String("input", "-", "Path to a JSON array of model forecasts, or - for stdin")
		paramsFile = flag.String("params", "", "Optional YAML file overriding the default fusion parameters")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	forecasts, err := readForecasts(*input)
	if err != nil {
		log.Fatalf("reading forecasts: %v", err)
	}
	for _, fc := range forecasts {
		if !fc.Model.Valid() {
			log.Warnf("unknown model %q in input; aggregating anyway", fc.Model)
		}
	}

	params := aggregate.DefaultParams()
	if *paramsFile != "" {
		raw, err := os.ReadFile(*paramsFile)
		if err != nil {
			log.Fatalf("reading params file: %v", err)
		}
		if err := yaml.Unmarshal(raw, &params); err != nil {
			log.Fatalf("parsing params file: %v", err)
		}
	}
	if err := params.Validate(); err != nil {
		log.Fatalf("invalid params: %v", err)
	}

	engine := aggregate.NewEngine(params, nil, log.GetSugaredLogger())
	fused, err := engine.Aggregate(forecasts)
	if err != nil {
		log.Fatalf("aggregating: %v", err)
	}

	calc := confidence.NewCalculator(params)
	perMetric := make(map[string]wx.ConfidenceResult)
	for _, m := range []confidence.Metric{
		confidence.MetricTemperature,
		confidence.MetricPrecipitation,
		confidence.MetricWind,
		confidence.MetricHumidity,
		confidence.MetricOverall,
	} {
		perMetric[string(m)] = calc.Calculate(fused, m, 0)
	}

	dailyConf := make([]wx.ConfidenceResult, 0, len(fused.Daily))
	for i, day := range fused.Daily {
		dailyConf = append(dailyConf, calc.CalculateDaily(day, i))
	}

	summary := narrative.NewGenerator(params).Generate(fused, dailyConf)

	doc := output{
		Forecast:        fused,
		Confidence:      perMetric,
		DailyConfidence: dailyConf,
		Narrative:       summary,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		log.Fatalf("encoding output: %v", err)
	}
}

func readForecasts(path string) ([]wx.ModelForecast, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var forecasts []wx.ModelForecast
	if err := json.Unmarshal(raw, &forecasts); err != nil {
		return nil, fmt.Errorf("parsing forecast JSON: %w", err)
	}
	return forecasts, nil
}
