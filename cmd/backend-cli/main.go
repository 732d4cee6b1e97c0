// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"github.com/QiuFeng54321/compiler-backend/internal/diag"
	"github.com/QiuFeng54321/compiler-backend/internal/frontend"
	"github.com/QiuFeng54321/compiler-backend/internal/ir"
	"github.com/QiuFeng54321/compiler-backend/internal/reach"
)

func main() {
	verbosity := 0
	var path string
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-v":
			verbosity++
		default:
			path = arg
		}
	}
	if path == "" {
		fmt.Println("Usage: backend-cli [-v] <file.tir>")
		os.Exit(1)
	}
	commonlog.Configure(verbosity, nil)

	startTime := time.Now()
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	reporter := diag.NewReporter(path, string(source))
	file, parseErrors := frontend.ParseSource(path, string(source))
	for _, buildErr := range parseErrors {
		fmt.Print(reporter.Format(buildErr))
	}

	hasErrors := len(parseErrors) > 0
	var program *ir.Program
	if file != nil {
		var buildErrors []diag.BuildError
		program, buildErrors = frontend.Lower(file)
		for _, buildErr := range buildErrors {
			fmt.Print(reporter.Format(buildErr))
			hasErrors = true
		}
	}

	if program != nil && !hasErrors {
		for _, id := range program.Functions.IDs() {
			f := program.FunctionPool.MustGet(id)
			if f.Defined {
				reach.Analyze(f)
			}
		}
		fmt.Print(ir.Print(program))
	}

	duration := formatDuration(time.Since(startTime))
	if hasErrors {
		color.Red("Build failed after %s", duration)
		os.Exit(1)
	}
	color.Green("Successfully analyzed %s in %s", path, duration)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
