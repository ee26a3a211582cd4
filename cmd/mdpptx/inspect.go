package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pptx>",
	Short: "Verify a presentation and list its slides",
	Long: `Read a .pptx archive back, check its package structure and print the
title and text of every slide in presentation order.

Example:
  mdpptx inspect deck.pptx
  mdpptx inspect deck.pptx --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	f, err := os.Open(args[0]) // #nosec G304 - path supplied by the user
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}

	report, err := pptx.NewInspector().Inspect(f, info.Size())
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", args[0], err)
	}

	return writeReport(cmd.OutOrStdout(), report, format)
}

func writeReport(w io.Writer, report *ports.ArchiveReport, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return enc.Close()
	case "text", "":
	default:
		return fmt.Errorf("unsupported format %q", format)
	}

	title := report.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(w, "Title:         %s\n", title)
	if report.Author != "" {
		fmt.Fprintf(w, "Author:        %s\n", report.Author)
	}
	if report.Identifier != "" {
		fmt.Fprintf(w, "Identifier:    %s\n", report.Identifier)
	}
	fmt.Fprintf(w, "Parts:         %d\n", report.PartCount)
	fmt.Fprintf(w, "Relationships: %d\n", report.Relationships)
	fmt.Fprintf(w, "Slides:        %d\n", len(report.Slides))

	for _, slide := range report.Slides {
		slideTitle := slide.Title
		if slideTitle == "" {
			slideTitle = "(no title)"
		}
		fmt.Fprintf(w, "\n%3d. %s [%s]\n", slide.Number, slideTitle, slide.Layout)
		for _, line := range slide.Text {
			fmt.Fprintf(w, "     %s\n", line)
		}
		for _, line := range slide.Notes {
			fmt.Fprintf(w, "     notes: %s\n", line)
		}
	}
	return nil
}
