package mcqgenerator

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	_ "github.com/mattn/go-sqlite3"
)

// DB represents the MCQ database connection
type DB struct {
	db *sql.DB
}

// OpenDB opens a new database connection
func OpenDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.db.Close()
}

// CreateTables creates the necessary tables if they don't exist
func (db *DB) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS generated_mcqs (
			id INTEGER PRIMARY KEY,
			question TEXT,
			options TEXT,
			correct_answer TEXT,
			explanation TEXT,
			category TEXT,
			difficulty TEXT,
			created_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS test_results (
			id INTEGER PRIMARY KEY,
			total_questions INTEGER,
			score INTEGER,
			percentage REAL,
			created_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		if _, err := db.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// SaveQuestions appends one row per MCQ, options serialized to JSON text.
// Rows are append-only; nothing updates or deletes them later.
func (db *DB) SaveQuestions(mcqs []MCQ) error {
	for _, mcq := range mcqs {
		optionsJSON, err := OptionsToJSON(mcq.Options)
		if err != nil {
			return fmt.Errorf("failed to serialize options: %w", err)
		}
		_, err = db.db.Exec(
			`INSERT INTO generated_mcqs (question, options, correct_answer, explanation, category, difficulty)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			mcq.Question, optionsJSON, string(mcq.CorrectAnswer), mcq.Explanation,
			string(mcq.Category), string(mcq.Difficulty),
		)
		if err != nil {
			return fmt.Errorf("failed to save question: %w", err)
		}
	}
	return nil
}

// SaveTestResult appends one quiz score summary row.
func (db *DB) SaveTestResult(score, total int) error {
	percentage := 0.0
	if total > 0 {
		percentage = float64(score) / float64(total) * 100
	}
	_, err := db.db.Exec(
		"INSERT INTO test_results (total_questions, score, percentage) VALUES (?, ?, ?)",
		total, score, percentage,
	)
	if err != nil {
		return fmt.Errorf("failed to save test result: %w", err)
	}
	VerboseLog("Saved test result: %d/%d (%.1f%%)", score, total, percentage)
	return nil
}

// Analytics is the aggregate view over everything persisted so far.
type Analytics struct {
	TotalQuestions int            `json:"total_questions"`
	Categories     map[string]int `json:"categories"`
	Difficulties   map[string]int `json:"difficulties"`
	AvgScore       float64        `json:"avg_score"`
}

func emptyAnalytics() Analytics {
	return Analytics{
		Categories:   map[string]int{},
		Difficulties: map[string]int{},
	}
}

// GetAnalytics aggregates question counts and the average test score.
// Any failure returns the all-zero default rather than propagating.
func (db *DB) GetAnalytics() Analytics {
	a := emptyAnalytics()

	if err := db.db.QueryRow("SELECT COUNT(*) FROM generated_mcqs").Scan(&a.TotalQuestions); err != nil {
		VerboseLog("Analytics error: %v", err)
		return emptyAnalytics()
	}

	if err := db.scanCounts("SELECT category, COUNT(*) FROM generated_mcqs GROUP BY category", a.Categories); err != nil {
		VerboseLog("Analytics error: %v", err)
		return emptyAnalytics()
	}
	if err := db.scanCounts("SELECT difficulty, COUNT(*) FROM generated_mcqs GROUP BY difficulty", a.Difficulties); err != nil {
		VerboseLog("Analytics error: %v", err)
		return emptyAnalytics()
	}

	var avg sql.NullFloat64
	if err := db.db.QueryRow("SELECT AVG(percentage) FROM test_results").Scan(&avg); err != nil {
		VerboseLog("Analytics error: %v", err)
		return emptyAnalytics()
	}
	if avg.Valid {
		a.AvgScore = math.Round(avg.Float64*10) / 10
	}

	return a
}

func (db *DB) scanCounts(query string, dest map[string]int) error {
	rows, err := db.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dest[key] = count
	}
	return rows.Err()
}

// Helper function to convert an option set to its JSON text encoding
func OptionsToJSON(options OptionSet) (string, error) {
	data, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("failed to marshal options: %w", err)
	}
	return string(data), nil
}

// Helper function to convert the JSON text encoding back to an option set
func JSONToOptions(optionsJSON string) (OptionSet, error) {
	var options OptionSet
	if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
		return OptionSet{}, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	return options, nil
}
