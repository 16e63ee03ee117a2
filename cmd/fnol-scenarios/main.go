// Scenario harness: routes the five reference FNOL documents and reports
// whether each lands in its expected queue.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/claimroute/internal/model"
	"github.com/ppiankov/claimroute/internal/pipeline"
	"github.com/ppiankov/claimroute/internal/scenarios"
)

func main() {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("FNOL ROUTING - SCENARIO HARNESS")
	fmt.Println(strings.Repeat("=", 80))

	p, err := pipeline.New(model.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	renderer := pipeline.NewRenderer(false)
	all := scenarios.All()
	passed := 0

	for i, sc := range all {
		decision := p.Process(sc.Document)

		fmt.Printf("\n%s\n", strings.Repeat("=", 80))
		fmt.Printf("TEST %d: %s\n", i+1, sc.Name)
		fmt.Println(strings.Repeat("=", 80))

		status := "✓ PASSED"
		if decision.RecommendedRoute == sc.Expected {
			passed++
		} else {
			status = fmt.Sprintf("✗ FAILED (Expected: %s, Got: %s)", sc.Expected, decision.RecommendedRoute)
		}

		fmt.Printf("Status: %s\n", status)
		fmt.Printf("Route: %s\n", decision.RecommendedRoute)
		fmt.Printf("Fields Extracted: %d\n", len(decision.ExtractedFields))
		fmt.Printf("Missing Fields: %d\n", len(decision.MissingFields))
		if len(decision.FraudFlags) > 0 {
			fmt.Printf("Fraud Flags: %s\n", strings.Join(decision.FraudFlags, ", "))
		}
		fmt.Println("\nFull Output:")
		if err := renderer.WriteJSON(os.Stdout, decision); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	failed := len(all) - passed

	fmt.Printf("\n%s\n", strings.Repeat("=", 80))
	fmt.Println("SCENARIO SUMMARY")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Total:   %d\n", len(all))
	fmt.Printf("Passed:  %d ✓\n", passed)
	fmt.Printf("Failed:  %d ✗\n", failed)
	fmt.Printf("Success Rate: %.1f%%\n\n", float64(passed)/float64(len(all))*100)

	if failed > 0 {
		fmt.Printf("⚠️  %d SCENARIO(S) FAILED\n", failed)
		os.Exit(1)
	}
	fmt.Println("✅ ALL SCENARIOS PASSED")
}
