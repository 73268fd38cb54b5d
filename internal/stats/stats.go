// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats computes dataset statistics and validates the field
// contract's invariants over the combined output. Records are loaded into
// an in-memory SQLite database for aggregation; flat files remain the
// dataset's only persistence.
package stats

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mkealoha/uhcatalog/pkg/types"
)

// Store is the in-memory SQLite database the statistics run against.
type Store struct {
	db *sql.DB
}

// Open creates an empty in-memory database with the courses schema.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE courses (
			course_prefix TEXT NOT NULL,
			course_number TEXT NOT NULL,
			course_title TEXT NOT NULL,
			course_desc TEXT,
			num_units TEXT,
			dept_name TEXT NOT NULL,
			inst_ipeds INTEGER NOT NULL,
			metadata TEXT,
			source_file TEXT NOT NULL
		)`,
		`CREATE INDEX idx_courses_source ON courses(source_file)`,
		`CREATE INDEX idx_courses_ipeds ON courses(inst_ipeds)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Load inserts records inside one transaction with a prepared statement.
func (s *Store) Load(courses []types.Course) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO courses
		(course_prefix, course_number, course_title, course_desc,
		 num_units, dept_name, inst_ipeds, metadata, source_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range courses {
		if _, err := stmt.Exec(
			c.CoursePrefix, c.CourseNumber, c.CourseTitle, c.CourseDesc,
			c.NumUnits, c.DeptName, c.InstIPEDS, c.Metadata, c.SourceFile,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting %s: %w", c.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// count runs a single-integer query.
func (s *Store) count(query string, args ...any) (int, error) {
	var n int
	if err := s.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("querying count: %w", err)
	}
	return n, nil
}

// valueCounts runs a (value, count) query into a CountStat slice, with
// percentages relative to total.
func (s *Store) valueCounts(query string, total int, args ...any) ([]CountStat, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying value counts: %w", err)
	}
	defer rows.Close()

	var stats []CountStat
	for rows.Next() {
		var cs CountStat
		if err := rows.Scan(&cs.Value, &cs.Count); err != nil {
			return nil, fmt.Errorf("scanning value counts: %w", err)
		}
		if total > 0 {
			cs.Percent = 100 * float64(cs.Count) / float64(total)
		}
		stats = append(stats, cs)
	}
	return stats, rows.Err()
}
