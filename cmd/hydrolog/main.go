package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/hydrograf/hydrolog/internal/app"
	"github.com/hydrograf/hydrolog/internal/log"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "scenario.yaml", "Path to the scenario file (YAML)")
	rainFile := flag.String("rainfall", "", "Path to the rainfall series (CSV, depth_mm or time_min,depth_mm rows)")
	timestep := flag.Float64("timestep", 0, "Rainfall timestep in minutes (inferred from the time column when omitted)")
	output := flag.String("output", "", "Output file (stdout when omitted)")
	format := flag.String("format", "json", "Output format: 'json' or 'csv'")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("hydrolog %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *rainFile == "" {
		log.Error("no rainfall file given. Pass -rainfall; run with -h for help")
		os.Exit(1)
	}

	application := app.New(app.Options{
		ScenarioFile: *cfgFile,
		RainfallFile: *rainFile,
		TimestepMin:  *timestep,
		OutputFile:   *output,
		Format:       *format,
	}, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Run failed: %v", err)
		os.Exit(1)
	}
}
