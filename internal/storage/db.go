package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"stock-import/internal/stockimport/model"
)

// DB хранит каталог товаров и точек в SQLite. Пул из одного соединения, писатель один.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// для :memory: у каждого соединения своя база
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS locations (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  contact TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS products (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  size TEXT NOT NULL,
  type TEXT NOT NULL,
  locationId TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  price REAL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_location ON products(locationId);
`
	_, err := d.conn.Exec(schema)
	return err
}

// Locations отдаёт точки в порядке создания, от него зависит разрешение точек по имени.
func (d *DB) Locations(ctx context.Context) ([]model.Location, error) {
	rows, err := d.conn.QueryContext(ctx, `SELECT id, name, address, contact FROM locations ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	var out []model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Contact); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (d *DB) SaveLocation(ctx context.Context, l model.Location) error {
	_, err := d.conn.ExecContext(ctx, `
INSERT INTO locations (id, name, address, contact) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  address=excluded.address,
  contact=excluded.contact
`, l.ID, l.Name, l.Address, l.Contact)
	if err != nil {
		return fmt.Errorf("save location %s: %w", l.ID, err)
	}
	return nil
}

// Products отдаёт весь каталог в порядке создания.
func (d *DB) Products(ctx context.Context) ([]model.Product, error) {
	rows, err := d.conn.QueryContext(ctx, `
SELECT id, name, size, type, locationId, quantity, price
FROM products ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []model.Product
	for rows.Next() {
		var (
			p     model.Product
			price sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Size, &p.Type, &p.LocationID, &p.Quantity, &price); err != nil {
			return nil, err
		}
		if price.Valid {
			v := price.Float64
			p.Price = &v
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Apply применяет операции сверки одной транзакцией.
// insert/update/zero сводятся к upsert по id: позиции никогда не удаляются.
func (d *DB) Apply(ctx context.Context, changes []model.Change) error {
	if len(changes) == 0 {
		return nil
	}
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO products (id, name, size, type, locationId, quantity, price, updatedAt)
VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  size=excluded.size,
  type=excluded.type,
  locationId=excluded.locationId,
  quantity=excluded.quantity,
  price=excluded.price,
  updatedAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range changes {
		p := c.Product
		var price any
		if p.Price != nil {
			price = *p.Price
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name, string(p.Size), string(p.Type), p.LocationID, p.Quantity, price); err != nil {
			return fmt.Errorf("%s product %s: %w", c.Kind, p.ID, err)
		}
	}
	return tx.Commit()
}
