package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/staffing-planner/internal/config"
	"github.com/iwvelando/staffing-planner/internal/logging"
	"github.com/iwvelando/staffing-planner/internal/planner"
	"github.com/iwvelando/staffing-planner/pkg/constants"
	"github.com/iwvelando/staffing-planner/pkg/output"
	"github.com/iwvelando/staffing-planner/pkg/paging"
	"github.com/iwvelando/staffing-planner/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	pageFlag := flag.String("page", "", "1-based page of results to print (overrides output.page)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s (see %s)\", \"error\": \"%v\"}\n", *configLocation, constants.ExampleConfigFile, err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	p := planner.New(logger, planner.WithLimit(conf.Solver.Limit), planner.WithCacheEntries(0))

	roles := conf.SolverRoles()
	results, err := p.Plan(context.Background(), roles, conf.ScaledTarget())
	if err != nil {
		logger.Fatal("failed to compute schedules",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	page := paging.New(len(results), conf.Output.PageSize, conf.PageIndex())
	if *pageFlag != "" && page.TotalPages > 0 {
		number, err := paging.ParseJump(*pageFlag, page.TotalPages)
		if err != nil {
			logger.Fatal("invalid page",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		page = paging.New(len(results), conf.Output.PageSize, number)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		err = output.PrettyFormat(os.Stdout, roles, results, page)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, roles, results)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(os.Stdout, roles, results, page)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
