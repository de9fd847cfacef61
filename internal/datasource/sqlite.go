package datasource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/glossgraph/pkg/discovery"
)

// SessionFile is the store's file name inside the state directory.
const SessionFile = "session.db"

// Session keys.
const (
	KeyViewMode             = "viewMode"
	KeyDiscoveredTerms      = "discoveredTerms"
	KeyStartingTerm         = "startingTerm"
	KeySearchOnlyDiscovered = "searchOnlyDiscovered"
	KeyHasSeenHelp          = "hasSeenHelp"
	KeySidebarOpen          = "sidebarOpen"
)

// Session is everything the UI remembers between runs.
type Session struct {
	Discovery   discovery.State
	HasSeenHelp bool
	// SidebarOpen is nil until the user toggles the info panel.
	SidebarOpen *bool
}

// Store is a key/value table of UI preferences in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens or creates the session database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	// One writer; the TUI is the only client.
	db.SetMaxOpenConns(1)

	const schema = `CREATE TABLE IF NOT EXISTS session (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating session table: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file.
func (s *Store) Path() string { return s.path }

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the raw value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores a raw value under key, replacing any previous one.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM session ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keys: %w", err)
	}
	return keys, nil
}

// LoadSession reads every session key. Missing or unreadable values keep
// their zero value; the discovery session validates ids against the
// glossary when the state is restored.
func (s *Store) LoadSession(ctx context.Context) (Session, error) {
	var out Session
	get := func(key string) (string, bool, error) { return s.Get(ctx, key) }

	if v, ok, err := get(KeyViewMode); err != nil {
		return out, err
	} else if ok {
		out.Discovery.Mode = discovery.Mode(v)
	}
	if v, ok, err := get(KeyDiscoveredTerms); err != nil {
		return out, err
	} else if ok {
		out.Discovery.Discovered = parseJSONStringArray(v)
	}
	if v, ok, err := get(KeyStartingTerm); err != nil {
		return out, err
	} else if ok {
		out.Discovery.StartingTerm = v
	}
	if v, ok, err := get(KeySearchOnlyDiscovered); err != nil {
		return out, err
	} else if ok {
		out.Discovery.SearchOnlyDiscovered, _ = strconv.ParseBool(v)
	}
	if v, ok, err := get(KeyHasSeenHelp); err != nil {
		return out, err
	} else if ok {
		out.HasSeenHelp, _ = strconv.ParseBool(v)
	}
	if v, ok, err := get(KeySidebarOpen); err != nil {
		return out, err
	} else if ok {
		if b, perr := strconv.ParseBool(v); perr == nil {
			out.SidebarOpen = &b
		}
	}
	return out, nil
}

// SaveSession writes every session key in one transaction.
func (s *Store) SaveSession(ctx context.Context, sess Session) error {
	discovered, err := json.Marshal(nonNil(sess.Discovery.Discovered))
	if err != nil {
		return fmt.Errorf("encoding discovered terms: %w", err)
	}
	values := map[string]string{
		KeyViewMode:             string(sess.Discovery.Mode),
		KeyDiscoveredTerms:      string(discovered),
		KeyStartingTerm:         sess.Discovery.StartingTerm,
		KeySearchOnlyDiscovered: strconv.FormatBool(sess.Discovery.SearchOnlyDiscovered),
		KeyHasSeenHelp:          strconv.FormatBool(sess.HasSeenHelp),
	}
	if sess.SidebarOpen != nil {
		values[KeySidebarOpen] = strconv.FormatBool(*sess.SidebarOpen)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO session (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	for k, v := range values {
		if _, err := stmt.ExecContext(ctx, k, v); err != nil {
			return fmt.Errorf("writing %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// parseJSONStringArray parses a JSON array of strings
func parseJSONStringArray(s string) []string {
	var result []string
	if err := json.Unmarshal([]byte(s), &result); err != nil {
		return nil
	}
	return result
}
