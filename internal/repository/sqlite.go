package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/xiaot623/gogo/studybuddy/internal/domain"
)

// SQLiteStore implements Store on an in-memory SQLite database. It is never
// backed by a file, so history ends with the process.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens a private in-memory database.
func NewSQLiteStore() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// migrate creates the history table. Rows are never updated or deleted, so
// seq stays contiguous and seq-1 is the list position.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS study_sessions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			topic TEXT,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			failed INTEGER NOT NULL DEFAULT 0
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, session *domain.StudySession) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO study_sessions (kind, topic, content, created_at, failed) VALUES (?, ?, ?, ?, ?)`,
		string(session.Kind), nullString(session.Topic), session.Content, session.CreatedAt, session.Failed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read session seq: %w", err)
	}
	session.Index = int(seq - 1)
	return nil
}

func (s *SQLiteStore) All(ctx context.Context) ([]domain.StudySession, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, kind, topic, content, created_at, failed FROM study_sessions ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.StudySession{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}

func (s *SQLiteStore) Get(ctx context.Context, index int) (*domain.StudySession, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT seq, kind, topic, content, created_at, failed FROM study_sessions WHERE seq = ?`, index+1)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return session, err
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM study_sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}

// Close closes the database, discarding all history.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*domain.StudySession, error) {
	var (
		seq       int64
		kind      string
		topic     sql.NullString
		content   string
		createdAt time.Time
		failed    bool
	)
	if err := row.Scan(&seq, &kind, &topic, &content, &createdAt, &failed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}
	// The driver hands back a fixed offset zone. Sessions are rendered in
	// local time like the memory store keeps them.
	return &domain.StudySession{
		Index:     int(seq - 1),
		Kind:      domain.Kind(kind),
		Topic:     topic.String,
		Content:   content,
		CreatedAt: createdAt.Local(),
		Failed:    failed,
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
