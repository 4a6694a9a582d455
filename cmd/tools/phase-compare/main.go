// Package main provides a tuning comparison tool for swing phase
// segmentation. It runs a recorded pose clip through the segmenter with the
// default tuning and an optional override tuning, reports where the phase
// indices diverge, and can render the motion-energy signal to HTML.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/fairway-data/swing.report/internal/config"
	"github.com/fairway-data/swing.report/internal/pose"
	"github.com/fairway-data/swing.report/internal/style"
	"github.com/fairway-data/swing.report/internal/swing"
)

// Config holds configuration for the tuning comparison.
type Config struct {
	FramesFile string
	TuningFile string
	OutputDir  string
	OutputJSON string
	OutputHTML string
	Verbose    bool
}

// clipFile is the on-disk clip format: per-frame pose samples as emitted by
// the upstream estimator.
type clipFile struct {
	Frames []pose.Sample `json:"frames"`
}

// RunStats holds one segmentation run's results.
type RunStats struct {
	Tuning       string             `json:"tuning"`
	Indices      swing.PhaseIndices `json:"indices"`
	SignalSource string             `json:"signal_source"`
	FallbackUsed bool               `json:"fallback_used"`
	Synthetic    bool               `json:"synthetic"`
	Style        style.Assessment   `json:"style"`
}

// ComparisonResult holds the results of the tuning comparison.
type ComparisonResult struct {
	FramesFile     string         `json:"frames_file"`
	TotalFrames    int            `json:"total_frames"`
	Runs           []RunStats     `json:"runs"`
	PhaseDeltas    map[string]int `json:"phase_deltas,omitempty"`
	AgreementCount int            `json:"agreement_count"`
}

func main() {
	cfg := parseFlags()

	if cfg.FramesFile == "" {
		log.Fatal("frames file is required")
	}
	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	samples, err := loadClip(cfg.FramesFile)
	if err != nil {
		log.Fatalf("Failed to load clip: %v", err)
	}

	result, energies, err := runComparison(cfg, samples)
	if err != nil {
		log.Fatalf("Comparison failed: %v", err)
	}

	printResults(result)

	if cfg.OutputJSON != "" {
		outputPath := cfg.OutputJSON
		if cfg.OutputDir != "" {
			outputPath = filepath.Join(cfg.OutputDir, cfg.OutputJSON)
		}
		if err := exportJSON(result, outputPath); err != nil {
			log.Printf("Warning: failed to export JSON: %v", err)
		} else {
			log.Printf("Results exported to: %s", outputPath)
		}
	}

	if cfg.OutputHTML != "" {
		outputPath := cfg.OutputHTML
		if cfg.OutputDir != "" {
			outputPath = filepath.Join(cfg.OutputDir, cfg.OutputHTML)
		}
		if err := renderHTML(result, energies, outputPath); err != nil {
			log.Printf("Warning: failed to render HTML: %v", err)
		} else {
			log.Printf("Charts written to: %s", outputPath)
		}
	}
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.FramesFile, "frames", "", "Path to pose clip JSON file")
	flag.StringVar(&cfg.TuningFile, "tuning", "", "Override tuning JSON to compare against defaults")
	flag.StringVar(&cfg.OutputDir, "output", "", "Output directory for results")
	flag.StringVar(&cfg.OutputJSON, "json", "", "Output JSON filename (e.g., results.json)")
	flag.StringVar(&cfg.OutputHTML, "html", "", "Output HTML filename for energy charts")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")

	flag.Parse()

	return cfg
}

func loadClip(path string) ([]pose.Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var clip clipFile
	if err := json.Unmarshal(data, &clip); err != nil {
		return nil, fmt.Errorf("parse clip %s: %w", path, err)
	}
	if len(clip.Frames) == 0 {
		return nil, fmt.Errorf("clip %s contains no frames", path)
	}
	return clip.Frames, nil
}

func runComparison(cfg Config, samples []pose.Sample) (*ComparisonResult, []swing.Result, error) {
	log.Printf("Segmenting %d frames from: %s", len(samples), cfg.FramesFile)

	tunings := []struct {
		name string
		cfg  *config.TuningConfig
	}{
		{"defaults", config.EmptyTuningConfig()},
	}
	if cfg.TuningFile != "" {
		override, err := config.LoadTuningConfig(cfg.TuningFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load tuning override: %w", err)
		}
		tunings = append(tunings, struct {
			name string
			cfg  *config.TuningConfig
		}{filepath.Base(cfg.TuningFile), override})
	}

	result := &ComparisonResult{
		FramesFile:  cfg.FramesFile,
		TotalFrames: len(samples),
	}
	var energies []swing.Result

	for _, tc := range tunings {
		res := swing.SegmentSamples(samples, swing.Options{Tuning: tc.cfg})
		assessment := style.Assessment{Style: style.StyleMixed, Confidence: style.ConfidenceLow}
		if in, ok := style.FromResult(res, false); ok {
			assessment = style.Classify(in)
		}
		result.Runs = append(result.Runs, RunStats{
			Tuning:       tc.name,
			Indices:      res.Indices,
			SignalSource: res.SignalSource,
			FallbackUsed: res.FallbackUsed,
			Synthetic:    res.Synthetic,
			Style:        assessment,
		})
		energies = append(energies, res)

		if cfg.Verbose {
			log.Printf("%s: indices=%v fallback=%v source=%s",
				tc.name, res.Indices.Array(), res.FallbackUsed, res.SignalSource)
		}
	}

	if len(result.Runs) == 2 {
		result.PhaseDeltas = make(map[string]int)
		a, b := result.Runs[0].Indices.Array(), result.Runs[1].Indices.Array()
		for i, p := range swing.Phases() {
			delta := b[i] - a[i]
			result.PhaseDeltas[p.String()] = delta
			if delta == 0 {
				result.AgreementCount++
			}
		}
	}

	return result, energies, nil
}

func printResults(result *ComparisonResult) {
	fmt.Println("\n=== Phase Segmentation Comparison ===")
	fmt.Printf("Clip: %s\n", result.FramesFile)
	fmt.Printf("Total Frames: %d\n", result.TotalFrames)

	for _, run := range result.Runs {
		fmt.Printf("\n--- %s ---\n", run.Tuning)
		for i, p := range swing.Phases() {
			fmt.Printf("  %-10s frame %d\n", p, run.Indices.Array()[i])
		}
		fmt.Printf("  source=%s fallback=%v synthetic=%v\n",
			run.SignalSource, run.FallbackUsed, run.Synthetic)
		fmt.Printf("  style=%s confidence=%s\n", run.Style.Style, run.Style.Confidence)
	}

	if result.PhaseDeltas != nil {
		fmt.Println("\n--- Tuning Deltas ---")
		for _, p := range swing.Phases() {
			fmt.Printf("  %-10s %+d\n", p, result.PhaseDeltas[p.String()])
		}
		fmt.Printf("Phases in agreement: %d/%d\n", result.AgreementCount, int(swing.NumPhases))
	}
}

func exportJSON(result *ComparisonResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// renderHTML writes one raw+smoothed energy line chart per run, with the
// detected phase indices marked on the x axis.
func renderHTML(result *ComparisonResult, energies []swing.Result, path string) error {
	page := components.NewPage()

	for i, res := range energies {
		xAxis := make([]int, len(res.Energy))
		raw := make([]opts.LineData, len(res.Energy))
		smoothed := make([]opts.LineData, len(res.Smoothed))
		for j := range res.Energy {
			xAxis[j] = j
			raw[j] = opts.LineData{Value: res.Energy[j]}
			smoothed[j] = opts.LineData{Value: res.Smoothed[j]}
		}

		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: "1100px", Height: "400px"}),
			charts.WithTitleOpts(opts.Title{
				Title:    fmt.Sprintf("Motion Energy (%s)", result.Runs[i].Tuning),
				Subtitle: fmt.Sprintf("frames=%d source=%s fallback=%v", result.TotalFrames, res.SignalSource, res.FallbackUsed),
			}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
			charts.WithXAxisOpts(opts.XAxis{Name: "frame"}),
			charts.WithYAxisOpts(opts.YAxis{Name: "energy"}),
		)

		marks := make([]charts.SeriesOpts, 0, int(swing.NumPhases))
		for _, p := range swing.Phases() {
			marks = append(marks, charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
				Name:  p.String(),
				XAxis: res.Indices.At(p),
			}))
		}

		line.SetXAxis(xAxis).
			AddSeries("raw", raw).
			AddSeries("smoothed", smoothed, marks...)
		page.AddCharts(line)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
