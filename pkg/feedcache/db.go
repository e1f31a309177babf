package feedcache

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/threatdeck/threatdeck/pkg/feed"
)

// Init opens the cache database, creating it on first use.
func (c *Client) Init() error {
	if c.Store == "" {
		store, err := storeDir()
		if err != nil {
			return err
		}
		c.Store = store
	}

	if !exists(c.Store) {
		if err := mkFolder(c.Store); err != nil {
			return err
		}
	}

	dbPath := filepath.Join(c.Store, "threatdeck.db")

	fresh := !exists(dbPath)
	if fresh {
		file, err := os.Create(dbPath)
		if err != nil {
			return err
		}
		file.Close()
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	if fresh {
		catalogTable := `CREATE TABLE catalog (
			"ID" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
			"CVEID" TEXT UNIQUE,
			"VendorProject" TEXT,
			"Product" TEXT,
			"Name" TEXT,
			"Description" TEXT,
			"RequiredAction" TEXT,
			"DateAdded" TEXT);`
		if _, err := db.Exec(catalogTable); err != nil {
			db.Close()
			return err
		}
	}

	c.DB = db
	return nil
}

// Replace swaps the whole cached snapshot for the given records. The
// cache never accumulates history across runs.
func (c *Client) Replace(records []feed.KevRecord) error {
	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM catalog`); err != nil {
		tx.Rollback()
		return err
	}

	sqlRow := `INSERT OR IGNORE INTO catalog
				  ("CVEID", "VendorProject", "Product", "Name", "Description", "RequiredAction", "DateAdded")
				   VALUES
				  (?, ?, ?, ?, ?, ?, ?)`

	for _, r := range records {
		_, err := tx.Exec(sqlRow, r.CVEID, r.VendorProject, r.Product,
			r.Name, r.Description, r.RequiredAction, r.DateAdded)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// Records reads the cached snapshot back.
func (c *Client) Records() ([]feed.KevRecord, error) {
	records := []feed.KevRecord{}

	rows, err := c.DB.Query(`SELECT CVEID, VendorProject, Product, Name, Description, RequiredAction, DateAdded FROM catalog`)
	if err != nil {
		return records, err
	}

	defer rows.Close()

	for rows.Next() {
		r := feed.KevRecord{}
		err = rows.Scan(&r.CVEID, &r.VendorProject, &r.Product,
			&r.Name, &r.Description, &r.RequiredAction, &r.DateAdded)
		if err != nil {
			continue
		}

		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return records, err
	}

	return records, nil
}
