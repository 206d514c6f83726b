// Package sqlite provides SQLite storage for translation runs
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ChrisMcGann/EEMKey/pkg/core"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Date format for RunTable (ISO 8601)
const runDateFormat = "2006-01-02T15:04:05Z07:00"

// Run describes one translation stored alongside its records.
type Run struct {
	Mode             core.Mode
	FluorescenceFile string
	AbsorbanceFile   string
	OutputFile       string
	CreatedAt        time.Time
}

// Writer handles writing translation runs to SQLite database files
type Writer struct {
	db         *sql.DB
	outputPath string
	runStmt    *sql.Stmt
	recordStmt *sql.Stmt
	closed     bool
}

// NewWriter opens (or creates) the database at outputPath
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS RunTable (
		RunId TEXT PRIMARY KEY,
		CreationDate TEXT,
		Mode TEXT,
		FluorescenceFile TEXT,
		AbsorbanceFile TEXT,
		OutputFile TEXT,
		RecordCount INTEGER
	);

	CREATE TABLE IF NOT EXISTS RecordTable (
		RecordId INTEGER PRIMARY KEY,
		RunId TEXT REFERENCES RunTable(RunId),
		Position INTEGER,
		Lem INTEGER,
		Lex INTEGER,
		Intensity DOUBLE,
		AbsEx DOUBLE,
		AbsEm DOUBLE,
		Corrected DOUBLE
	);

	CREATE INDEX IF NOT EXISTS RecordRunIndex ON RecordTable (RunId, Position);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.runStmt, err = w.db.Prepare(`
		INSERT INTO RunTable (
			RunId, CreationDate, Mode, FluorescenceFile, AbsorbanceFile, OutputFile, RecordCount
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare run statement: %w", err)
	}

	w.recordStmt, err = w.db.Prepare(`
		INSERT INTO RecordTable (
			RunId, Position, Lem, Lex, Intensity, AbsEx, AbsEm, Corrected
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record statement: %w", err)
	}

	return nil
}

// WriteRun stores run and every record of t in a single transaction and
// returns the generated run id.
func (w *Writer) WriteRun(run Run, t *core.Table) (string, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	runID := uuid.NewString()

	tx, err := w.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Stmt(w.runStmt).Exec(
		runID,
		run.CreatedAt.UTC().Format(runDateFormat),
		run.Mode.String(),
		run.FluorescenceFile,
		run.AbsorbanceFile,
		run.OutputFile,
		len(t.Records),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	recordStmt := tx.Stmt(w.recordStmt)
	for i, r := range t.Records {
		_, err := recordStmt.Exec(
			runID,
			i+1,
			r.Emission,
			r.Excitation,
			r.Intensity,
			r.AbsEx,
			r.AbsEm,
			r.Corrected,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// Records reads back the records of a stored run in their original order.
func (w *Writer) Records(runID string) ([]core.Record, error) {
	rows, err := w.db.Query(`
		SELECT Lem, Lex, Intensity, AbsEx, AbsEm, Corrected
		FROM RecordTable WHERE RunId = ? ORDER BY Position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var r core.Record
		if err := rows.Scan(&r.Emission, &r.Excitation, &r.Intensity, &r.AbsEx, &r.AbsEm, &r.Corrected); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close releases the prepared statements and the database connection.
// It is safe to call more than once.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	// Close prepared statements
	if w.runStmt != nil {
		w.runStmt.Close()
	}
	if w.recordStmt != nil {
		w.recordStmt.Close()
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
