package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mind-engage/sheetquiz/internal/quiz"
	"github.com/mind-engage/sheetquiz/internal/sheet"
)

func main() {
	input := flag.String("input", "", "Spreadsheet to read (.xlsx, .csv or .tsv)")
	output := flag.String("output", "", "Write the inferred questions as JSON to this path (default: stdout)")
	playMode := flag.Bool("play", false, "Take the test in the terminal instead of printing the questions")
	verbose := flag.Bool("verbose", false, "Enable verbose output")

	flag.Parse()

	if *input == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required\n")
		fmt.Fprintf(os.Stderr, "Usage: quizsheet -input <sheet> [-output <json-file>] [-play] [-verbose]\n")
		os.Exit(1)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read input file: %v\n", err)
		os.Exit(1)
	}

	s := quiz.NewSession(sheet.NewReader())
	if err := s.LoadFile(context.Background(), data, filepath.Base(*input)); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d questions from %s\n", len(s.State().Questions), *input)
	}

	if *playMode {
		if err := play(s, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	writeQuestions(s.State().Questions, *output, *verbose)
}

func writeQuestions(qs []quiz.Question, outputPath string, verbose bool) {
	jsonData, err := json.MarshalIndent(qs, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		os.Exit(1)
	}

	if outputPath == "" {
		fmt.Println(string(jsonData))
		return
	}
	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully wrote %d questions to: %s\n", len(qs), outputPath)

	if verbose && len(qs) > 0 {
		fmt.Printf("\n--- Sample Question ---\n")
		printQuestion(os.Stdout, qs[0])
	}
}
