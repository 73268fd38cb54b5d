// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mkealoha/uhcatalog/internal/dataset"
	"github.com/mkealoha/uhcatalog/internal/metadata"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Inspect course metadata strings",
}

var metadataParseCmd = &cobra.Command{
	Use:   "parse [raw string]",
	Short: "Parse metadata strings into labeled fields",
	Long: `Parse splits a semi-structured metadata string
("Prerequisites: ...; Repeatable: ...") into a label-to-value mapping and
prints it as indented JSON. Fragments with no label land in the
"_unrecognized" bucket.

With --file, every record in a dataset file is parsed and printed with its
metadata fields attached; --labels prints label frequencies instead.`,
	RunE: runMetadataParse,
}

var metadataLabelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the known metadata labels",
	Run: func(cmd *cobra.Command, args []string) {
		for _, label := range metadata.KnownLabels() {
			fmt.Println(label)
		}
	},
}

func init() {
	metadataParseCmd.Flags().String("file", "", "parse every record in this dataset file")
	metadataParseCmd.Flags().Bool("labels", false, "with --file, print label frequencies instead of records")

	metadataCmd.AddCommand(metadataParseCmd)
	metadataCmd.AddCommand(metadataLabelsCmd)
	rootCmd.AddCommand(metadataCmd)
}

func runMetadataParse(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	if file == "" {
		if len(args) != 1 {
			return fmt.Errorf("provide a metadata string or --file")
		}
		return printJSON(metadata.Parse(args[0]))
	}

	courses, err := dataset.ReadCourses(file)
	if err != nil {
		return err
	}

	if wantLabels, _ := cmd.Flags().GetBool("labels"); wantLabels {
		raws := make([]string, 0, len(courses))
		for _, c := range courses {
			raws = append(raws, types.StrVal(c.Metadata))
		}
		counts := metadata.LabelCounts(raws)

		labels := make([]string, 0, len(counts))
		for label := range counts {
			labels = append(labels, label)
		}
		sort.Slice(labels, func(i, j int) bool {
			if counts[labels[i]] != counts[labels[j]] {
				return counts[labels[i]] > counts[labels[j]]
			}
			return labels[i] < labels[j]
		})
		for _, label := range labels {
			fmt.Printf("%6d  %s\n", counts[label], label)
		}
		return nil
	}

	parsed := make([]types.ParsedCourse, 0, len(courses))
	for _, c := range courses {
		pc := types.ParsedCourse{Course: c}
		if c.Metadata != nil {
			pc.MetadataFields = metadata.Parse(*c.Metadata)
		}
		parsed = append(parsed, pc)
	}
	return printJSON(parsed)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
