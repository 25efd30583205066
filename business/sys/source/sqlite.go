package source

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// CrawledNode is one row from the Ethereum crawler database.
type CrawledNode struct {
	Name        string
	CountryName string
}

// CrawlerNodes reads the nodes table out of a crawler sqlite database.
// The database is opened read-only and closed before returning.
func CrawlerNodes(dbPath string) ([]CrawledNode, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, fmt.Errorf("opening crawler database %q: %w", dbPath, err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT name, country_name FROM nodes")
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	var nodes []CrawledNode
	for rows.Next() {
		var name, country sql.NullString
		if err := rows.Scan(&name, &country); err != nil {
			return nil, fmt.Errorf("scanning node row: %w", err)
		}
		nodes = append(nodes, CrawledNode{
			Name:        name.String,
			CountryName: country.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating node rows: %w", err)
	}

	return nodes, nil
}
