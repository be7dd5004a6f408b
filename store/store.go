// seehuhn.de/go/pcell - parametric mask cells for superconducting circuits
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package store keeps generated cells in an SQLite database, so that
// they can be reused without running the generators again.
//
// Cells are stored flat: shapes of placed child cells are merged into
// the stored cell.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell"
	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/region"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound is returned when a cell id is not in the store.
var ErrNotFound = errors.New("cell not found")

// Store is a cell library backed by an SQLite database.
// A Store is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Entry describes a stored cell.
type Entry struct {
	ID        string
	Name      string
	Generator string
	DBU       float64
	Params    map[string]any
	CreatedAt time.Time
}

// Open opens the database at path, creating it if needed, and brings the
// schema up to date.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open cell library: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrateUp() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = migrateLogger{}
	// m is not closed, since this would close the database

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// Version returns the schema version of the database.
func (s *Store) Version() (uint, error) {
	var version uint
	err := s.db.QueryRow(`SELECT version FROM schema_migrations LIMIT 1`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...any) {
	pcell.Logger().Debug(fmt.Sprintf("migrate: "+format, v...))
}

func (migrateLogger) Verbose() bool {
	return false
}

// Save stores the cell c, produced by the named generator with the given
// parameter values, and returns the id of the new entry.
func (s *Store) Save(ctx context.Context, c *layout.Cell, generator string, params map[string]any) (string, error) {
	return s.SaveAs(ctx, c.Name(), c, generator, params)
}

// SaveAs is like [Store.Save], but records the entry under the given name
// instead of the cell name.
func (s *Store) SaveAs(ctx context.Context, name string, c *layout.Cell, generator string, params map[string]any) (string, error) {
	l := c.Layout()
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encode parameters: %w", err)
	}

	id := uuid.New().String()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cells (cell_id, name, generator, dbu, params, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, generator, l.DBU, string(paramsJSON), time.Now().UnixNano())
	if err != nil {
		return "", fmt.Errorf("insert cell: %w", err)
	}

	for _, info := range l.Layers() {
		polys := c.FlatShapes(info.Name).Polygons()
		for seq, p := range polys {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO polygons (cell_id, layer_name, gds_layer, gds_type, seq, points)
				VALUES (?, ?, ?, ?, ?, ?)`,
				id, info.Name, info.Layer, info.Datatype, seq, encodePolygon(p))
			if err != nil {
				return "", fmt.Errorf("insert polygon: %w", err)
			}
		}
		for seq, p := range c.FlatPaths(info.Name) {
			pts, err := json.Marshal(flatten(p.Points))
			if err != nil {
				return "", err
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO paths (cell_id, layer_name, seq, width, points)
				VALUES (?, ?, ?, ?, ?)`,
				id, info.Name, seq, p.Width, string(pts))
			if err != nil {
				return "", fmt.Errorf("insert path: %w", err)
			}
		}
	}

	for name, p := range c.Refpoints() {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO refpoints (cell_id, name, x, y) VALUES (?, ?, ?, ?)`,
			id, name, p.X, p.Y)
		if err != nil {
			return "", fmt.Errorf("insert refpoint: %w", err)
		}
	}
	for seq, p := range c.Ports() {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ports (cell_id, seq, name, x, y, dx, dy) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, seq, p.Name, p.Pos.X, p.Pos.Y, p.Dir.X, p.Dir.Y)
		if err != nil {
			return "", fmt.Errorf("insert port: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	pcell.Logger().Info("cell stored", "cell", c.Name(), "id", id)
	return id, nil
}

// Get returns the description of a stored cell.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT cell_id, name, generator, dbu, params, created_at
		FROM cells WHERE cell_id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

// List returns all stored cells, newest first.
func (s *Store) List(ctx context.Context) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cell_id, name, generator, dbu, params, created_at
		FROM cells ORDER BY created_at DESC, cell_id`)
	if err != nil {
		return nil, fmt.Errorf("query cells: %w", err)
	}
	defer rows.Close()

	var res []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var e Entry
	var params string
	var created int64
	err := row.Scan(&e.ID, &e.Name, &e.Generator, &e.DBU, &params, &created)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(params), &e.Params); err != nil {
		return nil, fmt.Errorf("decode parameters of %s: %w", e.ID, err)
	}
	e.CreatedAt = time.Unix(0, created)
	return &e, nil
}

// Load creates a new cell in l holding the stored geometry, refpoints
// and ports.  Missing layers are added to the layer table of l.  If the
// stored database unit differs from l.DBU, the shapes are scaled.
func (s *Store) Load(ctx context.Context, id string, l *layout.Layout) (*layout.Cell, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c := l.CreateCell(e.Name)

	rows, err := s.db.QueryContext(ctx, `
		SELECT layer_name, gds_layer, gds_type, points
		FROM polygons WHERE cell_id = ? ORDER BY layer_name, seq`, id)
	if err != nil {
		return nil, fmt.Errorf("query polygons: %w", err)
	}
	byLayer := make(map[string][]region.Polygon)
	var layerOrder []string
	for rows.Next() {
		var info layout.LayerInfo
		var points string
		if err := rows.Scan(&info.Name, &info.Layer, &info.Datatype, &points); err != nil {
			rows.Close()
			return nil, err
		}
		p, err := decodePolygon(points)
		if err != nil {
			rows.Close()
			return nil, err
		}
		if _, seen := byLayer[info.Name]; !seen {
			layerOrder = append(layerOrder, info.Name)
			l.AddLayer(info)
		}
		byLayer[info.Name] = append(byLayer[info.Name], p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, name := range layerOrder {
		r := region.FromContours(byLayer[name]...)
		if e.DBU != l.DBU {
			f := e.DBU / l.DBU
			r = r.Transformed(matrix.Matrix{f, 0, 0, f, 0, 0})
		}
		if err := c.Insert(name, r); err != nil {
			return nil, err
		}
	}

	if err := s.loadPaths(ctx, id, c); err != nil {
		return nil, err
	}
	if err := s.loadRefpoints(ctx, id, c); err != nil {
		return nil, err
	}
	if err := s.loadPorts(ctx, id, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) loadPaths(ctx context.Context, id string, c *layout.Cell) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT layer_name, width, points
		FROM paths WHERE cell_id = ? ORDER BY layer_name, seq`, id)
	if err != nil {
		return fmt.Errorf("query paths: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var layer, points string
		var p layout.PathShape
		if err := rows.Scan(&layer, &p.Width, &points); err != nil {
			return err
		}
		var coords []float64
		if err := json.Unmarshal([]byte(points), &coords); err != nil {
			return fmt.Errorf("decode path: %w", err)
		}
		for i := 0; i+1 < len(coords); i += 2 {
			p.Points = append(p.Points, vec.Vec2{X: coords[i], Y: coords[i+1]})
		}
		if _, err := c.Layout().Layer(layer); err != nil {
			c.Layout().AddLayer(layout.LayerInfo{Name: layer})
		}
		if err := c.InsertPath(layer, p); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *Store) loadRefpoints(ctx context.Context, id string, c *layout.Cell) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, x, y FROM refpoints WHERE cell_id = ? ORDER BY name`, id)
	if err != nil {
		return fmt.Errorf("query refpoints: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var p vec.Vec2
		if err := rows.Scan(&name, &p.X, &p.Y); err != nil {
			return err
		}
		if err := c.AddRefpoint(name, p); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *Store) loadPorts(ctx context.Context, id string, c *layout.Cell) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, x, y, dx, dy FROM ports WHERE cell_id = ? ORDER BY seq`, id)
	if err != nil {
		return fmt.Errorf("query ports: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p layout.Port
		if err := rows.Scan(&p.Name, &p.Pos.X, &p.Pos.Y, &p.Dir.X, &p.Dir.Y); err != nil {
			return err
		}
		c.InsertPort(p)
	}
	return rows.Err()
}

// Delete removes a stored cell.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"polygons", "paths", "refpoints", "ports"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE cell_id = ?", id); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM cells WHERE cell_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete cell: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return tx.Commit()
}

func flatten(pts []vec.Vec2) []float64 {
	res := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		res = append(res, p.X, p.Y)
	}
	return res
}

func encodePolygon(p region.Polygon) string {
	coords := make([]int64, 0, 2*len(p))
	for _, pt := range p {
		coords = append(coords, pt.X, pt.Y)
	}
	buf, _ := json.Marshal(coords)
	return string(buf)
}

func decodePolygon(s string) (region.Polygon, error) {
	var coords []int64
	if err := json.Unmarshal([]byte(s), &coords); err != nil {
		return nil, fmt.Errorf("decode polygon: %w", err)
	}
	if len(coords)%2 != 0 {
		return nil, fmt.Errorf("decode polygon: odd number of coordinates")
	}
	p := make(region.Polygon, len(coords)/2)
	for i := range p {
		p[i] = region.Point{X: coords[2*i], Y: coords[2*i+1]}
	}
	return p, nil
}
