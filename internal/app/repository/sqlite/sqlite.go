package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"audio2text/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	file_name TEXT NOT NULL,
	audio_duration REAL NOT NULL DEFAULT 0,
	transcription TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	has_error INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_created_at ON transcriptions(created_at);
`

// SQLiteDB implements repository.TranscriptionDAO on a local sqlite file.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (creating if needed) the history database at dbFilePath.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &SQLiteDB{db: db}, nil
}

// NewFromDB wraps an existing connection; used by tests.
func NewFromDB(db *sql.DB) *SQLiteDB {
	return &SQLiteDB{db: db}
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) Record(fileName string, audioDuration float64, transcription string, hasError int, errorMessage string) error {
	insertSQL := `INSERT INTO transcriptions (file_name, audio_duration, transcription, created_at, has_error, error_message) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := sdb.db.Exec(insertSQL, fileName, audioDuration, transcription, time.Now(), hasError, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to insert transcription history: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) CheckIfProcessed(fileName string) (int, error) {
	query := `SELECT COUNT(*) FROM transcriptions WHERE file_name = ? AND has_error = 0`
	var count int
	if err := sdb.db.QueryRow(query, fileName).Scan(&count); err != nil {
		return 0, fmt.Errorf("query failed: %w", err)
	}
	return count, nil
}

func (sdb *SQLiteDB) GetRecent(limit int) ([]model.Transcription, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, file_name, audio_duration, transcription, created_at, has_error, error_message
		FROM transcriptions
		ORDER BY created_at DESC, id DESC
		LIMIT ?`
	rows, err := sdb.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	transcriptions := make([]model.Transcription, 0)
	for rows.Next() {
		var t model.Transcription
		if err := rows.Scan(&t.ID, &t.FileName, &t.AudioDuration, &t.Transcription, &t.CreatedAt, &t.HasError, &t.ErrorMessage); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		transcriptions = append(transcriptions, t)
	}
	return transcriptions, rows.Err()
}
