// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"go.yaml.in/yaml/v3"

	"github.com/mkealoha/uhcatalog/internal/metadata"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

// CountStat is one row of a grouped count.
type CountStat struct {
	Value   string  `yaml:"value"`
	Count   int     `yaml:"count"`
	Percent float64 `yaml:"percent"`
}

// ColumnStat reports completeness for one column.
type ColumnStat struct {
	Name        string  `yaml:"name"`
	Nulls       int     `yaml:"nulls"`
	NullPercent float64 `yaml:"null_percent"`
}

// Report is the full statistics summary for a dataset.
type Report struct {
	TotalRecords   int          `yaml:"total_records"`
	Columns        []ColumnStat `yaml:"columns"`
	BySourceFile   []CountStat  `yaml:"by_source_file"`
	ByInstitution  []CountStat  `yaml:"by_institution"`
	TopPrefixes    []CountStat  `yaml:"top_prefixes"`
	TopDepartments []CountStat  `yaml:"top_departments"`
	UnitsBreakdown []CountStat  `yaml:"units_breakdown"`
	MetadataLabels []CountStat  `yaml:"metadata_labels"`
}

// optionalColumns are the columns the field contract allows to be absent.
var optionalColumns = []string{"course_desc", "num_units", "metadata"}

// BuildReport computes the report from a loaded store. The top-prefix and
// top-department tables are limited to topN entries each.
func (s *Store) BuildReport(topN int) (*Report, error) {
	if topN <= 0 {
		topN = types.DefaultTopN
	}

	total, err := s.count(`SELECT COUNT(*) FROM courses`)
	if err != nil {
		return nil, err
	}
	r := &Report{TotalRecords: total}

	for _, col := range optionalColumns {
		nulls, err := s.count(fmt.Sprintf(
			`SELECT COUNT(*) FROM courses WHERE %s IS NULL`, col))
		if err != nil {
			return nil, err
		}
		cs := ColumnStat{Name: col, Nulls: nulls}
		if total > 0 {
			cs.NullPercent = 100 * float64(nulls) / float64(total)
		}
		r.Columns = append(r.Columns, cs)
	}

	r.BySourceFile, err = s.valueCounts(
		`SELECT source_file, COUNT(*) FROM courses
		 GROUP BY source_file ORDER BY source_file`, total)
	if err != nil {
		return nil, err
	}

	r.ByInstitution, err = s.valueCounts(
		`SELECT CAST(inst_ipeds AS TEXT), COUNT(*) FROM courses
		 GROUP BY inst_ipeds ORDER BY inst_ipeds`, total)
	if err != nil {
		return nil, err
	}

	r.TopPrefixes, err = s.valueCounts(
		`SELECT course_prefix, COUNT(*) AS n FROM courses
		 GROUP BY course_prefix ORDER BY n DESC, course_prefix LIMIT ?`,
		total, topN)
	if err != nil {
		return nil, err
	}

	r.TopDepartments, err = s.valueCounts(
		`SELECT dept_name, COUNT(*) AS n FROM courses
		 GROUP BY dept_name ORDER BY n DESC, dept_name LIMIT ?`,
		total, topN)
	if err != nil {
		return nil, err
	}

	r.UnitsBreakdown, err = s.valueCounts(
		`SELECT COALESCE(num_units, '(none)'), COUNT(*) AS n FROM courses
		 GROUP BY num_units ORDER BY n DESC, num_units`, total)
	if err != nil {
		return nil, err
	}

	r.MetadataLabels, err = s.metadataLabelCounts(total)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// metadataLabelCounts tallies label frequency across all metadata strings.
func (s *Store) metadataLabelCounts(total int) ([]CountStat, error) {
	rows, err := s.db.Query(
		`SELECT metadata FROM courses WHERE metadata IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("querying metadata: %w", err)
	}
	defer rows.Close()

	var raws []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scanning metadata: %w", err)
		}
		raws = append(raws, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
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

	stats := make([]CountStat, 0, len(labels))
	for _, label := range labels {
		cs := CountStat{Value: label, Count: counts[label]}
		if total > 0 {
			cs.Percent = 100 * float64(cs.Count) / float64(total)
		}
		stats = append(stats, cs)
	}
	return stats, nil
}

// WriteTable renders the report as aligned human-readable tables.
func (r *Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "total records\t%d\n\n", r.TotalRecords)

	fmt.Fprintln(tw, "column\tnulls\tnull %")
	for _, c := range r.Columns {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\n", c.Name, c.Nulls, c.NullPercent)
	}
	fmt.Fprintln(tw)

	sections := []struct {
		title string
		stats []CountStat
	}{
		{"records by source file", r.BySourceFile},
		{"records by institution (IPEDS)", r.ByInstitution},
		{"top course prefixes", r.TopPrefixes},
		{"top departments", r.TopDepartments},
		{"units breakdown", r.UnitsBreakdown},
		{"metadata labels", r.MetadataLabels},
	}
	for _, sec := range sections {
		fmt.Fprintf(tw, "%s\tcount\t%%\n", sec.title)
		for _, cs := range sec.stats {
			fmt.Fprintf(tw, "%s\t%d\t%.1f\n", cs.Value, cs.Count, cs.Percent)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

// WriteYAML writes the report to path, creating parent directories.
func (r *Report) WriteYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
