package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	sqlCreateFiles = `CREATE TABLE IF NOT EXISTS files(
		path TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated INTEGER NOT NULL
	    );`
	sqlUpsertFile = `INSERT INTO files (path, data, updated) VALUES (:path, :data, :updated) ON CONFLICT (path) DO UPDATE SET data=EXCLUDED.data, updated=EXCLUDED.updated;`
	sqlGetFile    = `SELECT path, data, updated FROM files WHERE path=? LIMIT 1;`
	sqlListFiles  = `SELECT path FROM files WHERE path LIKE ? ORDER BY path;`
)

// SQLiteStore keeps saved files as rows of a single sqlite database, so a
// whole library of tilemaps and patterns travels as one file.
type SQLiteStore struct {
	filename string
	db       *sqlx.DB
}

// NewTempSQLiteStore creates a store with a random name in the os tempdir.
func NewTempSQLiteStore() (*SQLiteStore, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	fname := filepath.Join(os.TempDir(), fmt.Sprintf("tilegrid.%d.sqlite", rng.Intn(1000000)))
	return OpenSQLiteStore(fname)
}

// OpenSQLiteStore given it's filename (database file) on disk.
// Will create if it doesn't exist.
func OpenSQLiteStore(fname string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", fname)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db, filename: fname}
	if _, err := s.db.Exec(sqlCreateFiles); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Filename returns the path to the database on disk
func (s *SQLiteStore) Filename() string {
	return s.filename
}

// Close the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// WriteFile implements Store, replacing any previous content.
func (s *SQLiteStore) WriteFile(name string, data []byte) error {
	_, err := s.db.NamedExec(sqlUpsertFile, dbFile{
		Path:    filepath.ToSlash(name),
		Data:    data,
		Updated: time.Now().Unix(),
	})
	return err
}

// ReadFile implements Store.
func (s *SQLiteStore) ReadFile(name string) ([]byte, error) {
	f := dbFile{}
	err := s.db.Get(&f, sqlGetFile, filepath.ToSlash(name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	if err != nil {
		return nil, err
	}
	return f.Data, nil
}

// List returns every stored path starting with prefix.
func (s *SQLiteStore) List(prefix string) ([]string, error) {
	paths := []string{}
	err := s.db.Select(&paths, sqlListFiles, filepath.ToSlash(prefix)+"%")
	return paths, err
}

// dbFile is one stored file.
type dbFile struct {
	Path    string `db:"path"`
	Data    []byte `db:"data"`
	Updated int64  `db:"updated"`
}
