package main

import (
	"fmt"
	"strings"
)

// printHeader draws a boxed title line, adapted from the teacher's
// REPL banner for use as a one-off section header in command output.
func printHeader(title string) {
	border := strings.Repeat("=", len(title)+4)
	fmt.Printf("\n+%s+\n|  %s  |\n+%s+\n\n", border, title, border)
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.2f%%", score*100)
}
