// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"fmt"

	"github.com/mkealoha/uhcatalog/pkg/types"
)

// Finding is one invariant violation discovered by Check.
type Finding struct {
	Check  string `yaml:"check"`
	Detail string `yaml:"detail"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Check, f.Detail)
}

// Check validates the dataset invariants and returns every violation found.
// An empty slice means the dataset is consistent.
func (s *Store) Check() ([]Finding, error) {
	var findings []Finding

	checks := []func() ([]Finding, error){
		s.checkRequiredFields,
		s.checkKnownInstitutions,
		s.checkSourceFileMapping,
		s.checkDuplicates,
	}
	for _, check := range checks {
		fs, err := check()
		if err != nil {
			return nil, err
		}
		findings = append(findings, fs...)
	}
	return findings, nil
}

// checkRequiredFields flags records with empty required columns.
func (s *Store) checkRequiredFields() ([]Finding, error) {
	var findings []Finding
	required := []string{
		"course_prefix", "course_number", "course_title",
		"dept_name", "source_file",
	}
	for _, col := range required {
		n, err := s.count(fmt.Sprintf(
			`SELECT COUNT(*) FROM courses WHERE %s = ''`, col))
		if err != nil {
			return nil, err
		}
		if n > 0 {
			findings = append(findings, Finding{
				Check:  "required fields",
				Detail: fmt.Sprintf("%d records with empty %s", n, col),
			})
		}
	}
	return findings, nil
}

// checkKnownInstitutions flags IPEDS IDs outside the campus registry.
func (s *Store) checkKnownInstitutions() ([]Finding, error) {
	rows, err := s.db.Query(
		`SELECT inst_ipeds, COUNT(*) FROM courses GROUP BY inst_ipeds`)
	if err != nil {
		return nil, fmt.Errorf("querying institutions: %w", err)
	}
	defer rows.Close()

	var findings []Finding
	for rows.Next() {
		var ipeds, n int
		if err := rows.Scan(&ipeds, &n); err != nil {
			return nil, fmt.Errorf("scanning institutions: %w", err)
		}
		if _, err := types.InstitutionByIPEDS(ipeds); err != nil {
			findings = append(findings, Finding{
				Check:  "known institutions",
				Detail: fmt.Sprintf("%d records with unknown IPEDS %d", n, ipeds),
			})
		}
	}
	return findings, rows.Err()
}

// checkSourceFileMapping verifies every (inst_ipeds, source_file) pair
// matches the registry, so the two columns stay a bijection.
func (s *Store) checkSourceFileMapping() ([]Finding, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT inst_ipeds, source_file FROM courses`)
	if err != nil {
		return nil, fmt.Errorf("querying source files: %w", err)
	}
	defer rows.Close()

	var findings []Finding
	for rows.Next() {
		var ipeds int
		var source string
		if err := rows.Scan(&ipeds, &source); err != nil {
			return nil, fmt.Errorf("scanning source files: %w", err)
		}
		inst, err := types.InstitutionByIPEDS(ipeds)
		if err != nil {
			continue // reported by the institution check
		}
		if source != inst.SourceFile() {
			findings = append(findings, Finding{
				Check: "source file mapping",
				Detail: fmt.Sprintf("IPEDS %d has source_file %q, want %q",
					ipeds, source, inst.SourceFile()),
			})
		}
	}
	return findings, rows.Err()
}

// checkDuplicates flags repeated (inst_ipeds, course_prefix, course_number)
// keys, which the combine stage should have collapsed.
func (s *Store) checkDuplicates() ([]Finding, error) {
	rows, err := s.db.Query(
		`SELECT inst_ipeds, course_prefix, course_number, COUNT(*) AS n
		 FROM courses
		 GROUP BY inst_ipeds, course_prefix, course_number
		 HAVING n > 1
		 ORDER BY inst_ipeds, course_prefix, course_number`)
	if err != nil {
		return nil, fmt.Errorf("querying duplicates: %w", err)
	}
	defer rows.Close()

	var findings []Finding
	for rows.Next() {
		var ipeds, n int
		var prefix, number string
		if err := rows.Scan(&ipeds, &prefix, &number, &n); err != nil {
			return nil, fmt.Errorf("scanning duplicates: %w", err)
		}
		findings = append(findings, Finding{
			Check: "duplicate courses",
			Detail: fmt.Sprintf("%s %s appears %d times for IPEDS %d",
				prefix, number, n, ipeds),
		})
	}
	return findings, rows.Err()
}
