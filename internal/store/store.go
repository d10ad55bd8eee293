// Package store persists models in a SQLite database. A database holds
// any number of models, each identified by name.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/alexiusacademia/goglass/internal/model"
)

// ErrNotFound is returned when no model has the requested name
var ErrNotFound = errors.New("model not found")

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// object kinds stored as JSON in the objects table
const (
	kindMaterial    = "material"
	kindThickness   = "thickness"
	kindSurface     = "surface"
	kindSupport     = "nodal_support"
	kindLoadCase    = "load_case"
	kindSurfaceLoad = "surface_load"
)

// Store is a SQLite model database
type Store struct {
	db *sql.DB
}

// Summary describes a stored model
type Summary struct {
	ID        string
	Name      string
	Nodes     int
	Lines     int
	UpdatedAt time.Time
}

// Open opens or creates the database at path and creates the schema if
// it does not exist.
func Open(path string) (*Store, error) {
	dsn := MemoryPath
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrap(err, "creating database directory")
			}
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// an in-memory database lives only as long as its connection
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS models (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS nodes (
			model_id TEXT NOT NULL,
			no INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			z REAL NOT NULL,
			PRIMARY KEY (model_id, no)
		)`,
		`CREATE TABLE IF NOT EXISTS lines (
			model_id TEXT NOT NULL,
			no INTEGER NOT NULL,
			nodes TEXT NOT NULL,
			PRIMARY KEY (model_id, no)
		)`,
		`CREATE TABLE IF NOT EXISTS objects (
			model_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			no INTEGER NOT NULL,
			data TEXT NOT NULL,
			PRIMARY KEY (model_id, kind, no)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "executing schema statement")
		}
	}
	return nil
}

// Save stores m under its name, replacing any model of the same name
func (s *Store) Save(ctx context.Context, m *model.Model) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	// a model keeps its id across renames
	for _, key := range []string{"name", "id"} {
		value := m.Name
		if key == "id" {
			value = m.ID
		}
		id, err := lookupID(ctx, tx, key, value)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := deleteModel(ctx, tx, id); err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO models (id, name, updated_at) VALUES (?, ?, ?)`,
		m.ID, m.Name, now,
	); err != nil {
		return errors.Wrapf(err, "saving model %q", m.Name)
	}

	for _, n := range m.Nodes() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO nodes (model_id, no, x, y, z) VALUES (?, ?, ?, ?, ?)`,
			m.ID, n.No, n.X, n.Y, n.Z,
		); err != nil {
			return errors.Wrapf(err, "saving node %d", n.No)
		}
	}

	for _, l := range m.Lines() {
		nodes, err := json.Marshal(l.Nodes)
		if err != nil {
			return errors.Wrapf(err, "encoding line %d", l.No)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lines (model_id, no, nodes) VALUES (?, ?, ?)`,
			m.ID, l.No, string(nodes),
		); err != nil {
			return errors.Wrapf(err, "saving line %d", l.No)
		}
	}

	for _, obj := range objectsOf(m.Document()) {
		data, err := json.Marshal(obj.value)
		if err != nil {
			return errors.Wrapf(err, "encoding %s %d", obj.kind, obj.no)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO objects (model_id, kind, no, data) VALUES (?, ?, ?, ?)`,
			m.ID, obj.kind, obj.no, string(data),
		); err != nil {
			return errors.Wrapf(err, "saving %s %d", obj.kind, obj.no)
		}
	}

	return errors.Wrap(tx.Commit(), "committing model")
}

// Load reads the model called name
func (s *Store) Load(ctx context.Context, name string) (*model.Model, error) {
	doc := model.Document{Name: name}
	err := s.db.QueryRowContext(ctx, `SELECT id FROM models WHERE name = ?`, name).Scan(&doc.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "model %q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "looking up model %q", name)
	}

	if doc.Nodes, err = s.loadNodes(ctx, doc.ID); err != nil {
		return nil, err
	}
	if doc.Lines, err = s.loadLines(ctx, doc.ID); err != nil {
		return nil, err
	}

	targets := []struct {
		kind   string
		decode func([]byte) error
	}{
		{kindMaterial, appendJSON(&doc.Materials)},
		{kindThickness, appendJSON(&doc.Thicknesses)},
		{kindSurface, appendJSON(&doc.Surfaces)},
		{kindSupport, appendJSON(&doc.Supports)},
		{kindLoadCase, appendJSON(&doc.LoadCases)},
		{kindSurfaceLoad, appendJSON(&doc.SurfaceLoads)},
	}
	for _, target := range targets {
		if err := s.loadObjects(ctx, doc.ID, target.kind, target.decode); err != nil {
			return nil, err
		}
	}

	m, err := model.FromDocument(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "rebuilding model %q", name)
	}
	return m, nil
}

// appendJSON returns a decoder that appends each row to dst
func appendJSON[T any](dst *[]T) func([]byte) error {
	return func(data []byte) error {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*dst = append(*dst, v)
		return nil
	}
}

func (s *Store) loadNodes(ctx context.Context, modelID string) ([]model.Node, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT no, x, y, z FROM nodes WHERE model_id = ? ORDER BY no`, modelID)
	if err != nil {
		return nil, errors.Wrap(err, "querying nodes")
	}
	defer rows.Close()

	var nodes []model.Node
	for rows.Next() {
		var n model.Node
		if err := rows.Scan(&n.No, &n.X, &n.Y, &n.Z); err != nil {
			return nil, errors.Wrap(err, "scanning node")
		}
		nodes = append(nodes, n)
	}
	return nodes, errors.Wrap(rows.Err(), "iterating nodes")
}

func (s *Store) loadLines(ctx context.Context, modelID string) ([]model.Line, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT no, nodes FROM lines WHERE model_id = ? ORDER BY no`, modelID)
	if err != nil {
		return nil, errors.Wrap(err, "querying lines")
	}
	defer rows.Close()

	var lines []model.Line
	for rows.Next() {
		var l model.Line
		var nodes string
		if err := rows.Scan(&l.No, &nodes); err != nil {
			return nil, errors.Wrap(err, "scanning line")
		}
		if err := json.Unmarshal([]byte(nodes), &l.Nodes); err != nil {
			return nil, errors.Wrapf(err, "decoding line %d", l.No)
		}
		lines = append(lines, l)
	}
	return lines, errors.Wrap(rows.Err(), "iterating lines")
}

func (s *Store) loadObjects(ctx context.Context, modelID, kind string, decode func([]byte) error) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT no, data FROM objects WHERE model_id = ? AND kind = ? ORDER BY no`, modelID, kind)
	if err != nil {
		return errors.Wrapf(err, "querying %s objects", kind)
	}
	defer rows.Close()

	for rows.Next() {
		var no int
		var data string
		if err := rows.Scan(&no, &data); err != nil {
			return errors.Wrapf(err, "scanning %s", kind)
		}
		if err := decode([]byte(data)); err != nil {
			return errors.Wrapf(err, "decoding %s %d", kind, no)
		}
	}
	return errors.Wrapf(rows.Err(), "iterating %s objects", kind)
}

// List returns a summary of every stored model, ordered by name
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.name, m.updated_at,
			(SELECT count(*) FROM nodes n WHERE n.model_id = m.id),
			(SELECT count(*) FROM lines l WHERE l.model_id = m.id)
		FROM models m ORDER BY m.name`)
	if err != nil {
		return nil, errors.Wrap(err, "listing models")
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var updated string
		if err := rows.Scan(&sum.ID, &sum.Name, &updated, &sum.Nodes, &sum.Lines); err != nil {
			return nil, errors.Wrap(err, "scanning model summary")
		}
		if sum.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, errors.Wrapf(err, "parsing update time of %q", sum.Name)
		}
		out = append(out, sum)
	}
	return out, errors.Wrap(rows.Err(), "iterating models")
}

// Delete removes the model called name
func (s *Store) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	id, err := lookupID(ctx, tx, "name", name)
	if err != nil {
		return err
	}
	if err := deleteModel(ctx, tx, id); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "committing delete")
}

type object struct {
	kind  string
	no    int
	value any
}

// objectsOf flattens the objects stored as JSON rows
func objectsOf(doc model.Document) []object {
	var objs []object
	for _, v := range doc.Materials {
		objs = append(objs, object{kindMaterial, v.No, v})
	}
	for _, v := range doc.Thicknesses {
		objs = append(objs, object{kindThickness, v.No, v})
	}
	for _, v := range doc.Surfaces {
		objs = append(objs, object{kindSurface, v.No, v})
	}
	for _, v := range doc.Supports {
		objs = append(objs, object{kindSupport, v.No, v})
	}
	for _, v := range doc.LoadCases {
		objs = append(objs, object{kindLoadCase, v.No, v})
	}
	for _, v := range doc.SurfaceLoads {
		objs = append(objs, object{kindSurfaceLoad, v.No, v})
	}
	return objs
}

// lookupID finds the id of the model whose column key equals value
func lookupID(ctx context.Context, tx *sql.Tx, key, value string) (string, error) {
	query := `SELECT id FROM models WHERE name = ?`
	if key == "id" {
		query = `SELECT id FROM models WHERE id = ?`
	}

	var id string
	err := tx.QueryRowContext(ctx, query, value).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.Wrapf(ErrNotFound, "model %s %q", key, value)
	}
	if err != nil {
		return "", errors.Wrapf(err, "looking up model %s %q", key, value)
	}
	return id, nil
}

func deleteModel(ctx context.Context, tx *sql.Tx, id string) error {
	for _, stmt := range []string{
		`DELETE FROM nodes WHERE model_id = ?`,
		`DELETE FROM lines WHERE model_id = ?`,
		`DELETE FROM objects WHERE model_id = ?`,
		`DELETE FROM models WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return errors.Wrapf(err, "deleting model %s", id)
		}
	}
	return nil
}
