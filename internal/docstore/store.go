// Package docstore provides durable SQLite-backed document persistence.
//
// The store is the source of truth for the knowledge base: every document
// is kept as one row with its content, serialized metadata, embedding and
// provenance, and the whole table is replayed in insertion order at
// startup to rebuild the in-memory vector index.
package docstore

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

var (
	// ErrNotFound is returned when a document id does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrMalformedEmbedding indicates a stored embedding blob that cannot
	// be decoded to a float32 vector.
	ErrMalformedEmbedding = errors.New("malformed embedding blob")
)

// Record is one persisted document row.
type Record struct {
	ID        string
	Content   string
	Metadata  map[string]any
	Embedding []float32
	Timestamp time.Time
	Source    string
	Category  string
}

// Store is a SQLite-backed keyed document store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if absent) the document database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	// WAL mode for concurrent readers; busy timeout serializes writers.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// createSchema creates the document table if it does not exist.
func (s *Store) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS knowledge_documents (
			id        TEXT PRIMARY KEY,
			content   TEXT NOT NULL,
			metadata  TEXT,
			embedding BLOB,
			timestamp DATETIME,
			source    TEXT,
			category  TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Put inserts or replaces a document by id. The write is a single
// statement, so an insert-or-replace of one id never interleaves with a
// concurrent insert-or-replace of the same id.
func (s *Store) Put(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record id is required")
	}

	metadata, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("serializing metadata: %w", err)
	}

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO knowledge_documents
			(id, content, metadata, embedding, timestamp, source, category)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Content, string(metadata), encodeEmbedding(rec.Embedding),
		ts.Format(time.RFC3339Nano), rec.Source, rec.Category)
	if err != nil {
		return fmt.Errorf("writing document %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns the document with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, content, metadata, embedding, timestamp, source, category
		FROM knowledge_documents WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, err
}

// Skipped identifies a row that could not be decoded during a bulk read.
type Skipped struct {
	ID  string
	Err error
}

// All returns every decodable document in insertion (rowid) order. The
// order is what makes startup replay line up with vector index positions.
// Rows whose metadata or embedding cannot be decoded are skipped and
// reported in the second return value; a corrupt record never aborts the
// bulk read.
func (s *Store) All(ctx context.Context) ([]Record, []Skipped, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, metadata, embedding, timestamp, source, category
		FROM knowledge_documents ORDER BY rowid
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var (
		records []Record
		skipped []Skipped
	)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			skipped = append(skipped, Skipped{ID: rec.ID, Err: err})
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating documents: %w", err)
	}
	return records, skipped, nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM knowledge_documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec          Record
		metadataJSON sql.NullString
		blob         []byte
		ts           sql.NullString
	)
	if err := sc.Scan(&rec.ID, &rec.Content, &metadataJSON, &blob, &ts, &rec.Source, &rec.Category); err != nil {
		return rec, err
	}

	if metadataJSON.Valid && metadataJSON.String != "" && metadataJSON.String != "null" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &rec.Metadata); err != nil {
			return rec, fmt.Errorf("decoding metadata for %s: %w", rec.ID, err)
		}
	}

	embedding, err := DecodeEmbedding(blob)
	if err != nil {
		return rec, fmt.Errorf("document %s: %w", rec.ID, err)
	}
	rec.Embedding = embedding

	if ts.Valid && ts.String != "" {
		parsed, err := time.Parse(time.RFC3339Nano, ts.String)
		if err == nil {
			rec.Timestamp = parsed
		}
	}

	return rec, nil
}

// encodeEmbedding serializes a vector as a little-endian float32 buffer.
func encodeEmbedding(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	buf := make([]byte, 4*len(vec))
	for i, f := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// DecodeEmbedding deserializes a little-endian float32 buffer. A nil blob
// decodes to a nil vector; a blob whose length is not a multiple of four
// is malformed.
func DecodeEmbedding(blob []byte) ([]float32, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedEmbedding, len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}
