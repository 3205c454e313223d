// Package main provides a performance benchmarking tool for the Forgepulse CLI.
// It measures metric query latency against a populated warehouse, running each
// metric multiple times, treating the first run as cold and averaging the rest
// as warm, generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - forgepulse binary installed and available in PATH
// - FORGEPULSE_DB_CONNECT pointing at a populated warehouse
//
// Usage: go run benchmark/main.go [group-id]
//
//	group-id: Repository group to scope the benchmarked metrics to
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Metric   string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	GroupID string
	Timeout time.Duration
	Runs    int
	Metrics []string
}

func main() {
	// Parse command line arguments
	groupID := "1"
	if len(os.Args) == 2 {
		if _, err := strconv.ParseInt(os.Args[1], 10, 64); err != nil {
			fmt.Printf("Usage: %s [group-id]\n", os.Args[0])
			os.Exit(1)
		}
		groupID = os.Args[1]
	}

	config := BenchmarkConfig{
		GroupID: groupID,
		Timeout: 2 * time.Minute,
		Runs:    4,
		Metrics: []string{
			"code-changes",
			"code-changes-lines",
			"contributors",
			"issues-new",
			"issue-backlog",
			"top-committers",
			"annual-commit-count-ranked-by-repo",
			"downloaded-repos",
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the forgepulse binary and warehouse config exist
func checkPrerequisites() error {
	if _, err := exec.LookPath("forgepulse"); err != nil {
		return fmt.Errorf("forgepulse binary not found in PATH")
	}
	if os.Getenv("FORGEPULSE_DB_CONNECT") == "" {
		return fmt.Errorf("FORGEPULSE_DB_CONNECT is not set")
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured metrics
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d metrics, %v timeout, %d runs each\n",
		len(config.Metrics), config.Timeout, config.Runs)

	for _, metric := range config.Metrics {
		fmt.Printf("Benchmarking %s\n", metric)
		cold, warmTimes := runBenchmark(config, metric)

		coldStr := "TIMEOUT"
		if cold > 0 {
			coldStr = fmt.Sprintf("%.3fs", cold)
		}

		warmStr := "TIMEOUT"
		if len(warmTimes) > 0 {
			var sum float64
			for _, t := range warmTimes {
				sum += t
			}
			warmStr = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
		}

		fmt.Printf("  Cold time: %s, Warm average: %s\n", coldStr, warmStr)
		results = append(results, BenchmarkResult{Metric: metric, ColdTime: coldStr, WarmTime: warmStr})
	}

	return results
}

// runBenchmark executes one metric multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, metric string) (coldTime float64, warmTimes []float64) {
	args := []string{"metric", metric, "--group", config.GroupID, "--output", "csv", "--output-file", os.DevNull}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("forgepulse", args...)

		done := make(chan bool)
		var cmdErr error

		go func() {
			cmdErr = cmd.Run()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/forgepulse_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"metric", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Metric, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-40s cold %-10s warm %s\n", result.Metric, result.ColdTime, result.WarmTime)
	}
}
