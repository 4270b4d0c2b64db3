package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	log "github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"staffing-calculator/dispatch"
	"staffing-calculator/formatter"
	"staffing-calculator/metrics"
	"staffing-calculator/models"
	"staffing-calculator/scenarios"
	"staffing-calculator/server"
)

func main() {
	// Define flags
	model := flag.String("model", "erlang_c", "Staffing model: erlang_c|erlang_a|erlang_x|compare")
	volume := flag.Float64("volume", 0, "Offered contacts in the interval (required unless -listen)")
	aht := flag.Float64("aht", 0, "Average handle time in seconds (required unless -listen)")
	interval := flag.Float64("interval", 1800, "Interval length in seconds")
	targetSL := flag.Float64("target-sl", 0.80, "Target service level (fraction or percent)")
	threshold := flag.Float64("threshold", 20, "Service level threshold in seconds")
	maxOccupancy := flag.Float64("max-occupancy", 1.0, "Maximum agent occupancy (fraction or percent)")
	shrinkage := flag.Float64("shrinkage", 0, "Shrinkage (fraction or percent)")
	patience := flag.Float64("patience", 0, "Average caller patience in seconds (erlang_a/erlang_x)")
	format := flag.String("format", "text", "Output format: text|json|csv")
	listen := flag.String("listen", "", "Run the HTTP API on this address (e.g., :8080)")
	dbPath := flag.String("db", "scenarios.db", "SQLite path for saved scenarios (server mode)")
	metricsAddr := flag.String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	flag.Parse()

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			fmt.Printf("Metrics server listening on %s/metrics\n", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				fmt.Printf("Metrics server error: %v\n", err)
			}
		}()
	}

	// Server mode: the API exposes /metrics itself, so -metrics-addr is
	// only useful for the one-shot CLI path.
	if *listen != "" {
		store, err := scenarios.New(*dbPath)
		if err != nil {
			log.WithError(err).Fatal("open scenario store")
		}
		defer store.Close()

		srv := server.New(store)
		log.WithField("addr", *listen).Info("staffing API listening")
		if err := fasthttp.ListenAndServe(*listen, srv.Handle); err != nil {
			log.WithError(err).Fatal("server failed")
		}
		return
	}

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv (got: %s)\n", *format)
		os.Exit(1)
	}

	// Validate model enum
	modelID := models.ModelID(*model)
	if *model != "compare" && !modelID.Valid() {
		fmt.Printf("Error: model must be one of: erlang_c, erlang_a, erlang_x, compare (got: %s)\n", *model)
		os.Exit(1)
	}

	// Validate required workload flags
	if *volume <= 0 || *aht <= 0 {
		fmt.Println("Error: -volume and -aht are required for a calculation")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	workload := models.WorkloadParameters{
		Volume:          *volume,
		AHTSeconds:      *aht,
		IntervalSeconds: *interval,
	}
	target := models.ServiceTarget{
		ServiceLevel:     *targetSL,
		ThresholdSeconds: *threshold,
		MaxOccupancy:     *maxOccupancy,
		Shrinkage:        *shrinkage,
	}
	var patienceParams *models.PatienceParameters
	if *patience > 0 {
		patienceParams = &models.PatienceParameters{AveragePatienceSeconds: *patience}
	}

	// Output based on format
	if *model == "compare" {
		cmp := dispatch.Compare(workload, target, patienceParams)
		switch *format {
		case "json":
			out, err := formatter.CompareJSON(cmp)
			if err != nil {
				log.WithError(err).Fatal("encode comparison")
			}
			fmt.Println(out)
		case "csv":
			fmt.Print(formatter.CompareCSV(cmp))
		default: // "text"
			fmt.Print(formatter.CompareText(cmp))
		}
	} else {
		result := dispatch.Run(workload, target, patienceParams, modelID)
		switch *format {
		case "json":
			out, err := formatter.FormatJSON(modelID, result)
			if err != nil {
				log.WithError(err).Fatal("encode result")
			}
			fmt.Println(out)
		case "csv":
			fmt.Print(formatter.FormatCSV(modelID, result))
		default: // "text"
			fmt.Print(formatter.FormatText(modelID, result))
		}
	}

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		jobName := "staffing_calculator"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			fmt.Fprintf(os.Stderr, "Error pushing to Pushgateway: %v\n", err)
		} else {
			fmt.Println("\nMetrics successfully pushed to Pushgateway")
		}
	}

	if *wait && *metricsAddr != "" {
		fmt.Println("\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		// Wait for interrupt signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		fmt.Println("\nExiting...")
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		// but typically batch jobs should use pushgateway or wait
		time.Sleep(100 * time.Millisecond)
	}
}
