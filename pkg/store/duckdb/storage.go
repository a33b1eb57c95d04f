package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const DeviceTableSchema = `
	CREATE TABLE IF NOT EXISTS devices (
		id VARCHAR NOT NULL PRIMARY KEY,
		dairy_code VARCHAR NOT NULL
	);
`

const MemberTableSchema = `
	CREATE TABLE IF NOT EXISTS members (
		device_id VARCHAR NOT NULL,
		code VARCHAR NOT NULL,
		name VARCHAR,
		milk_type VARCHAR,
		commission_type VARCHAR,
		status VARCHAR,
		position INTEGER NOT NULL,
		PRIMARY KEY (device_id, code)
	);
`

var bootQueries = []string{
	DeviceTableSchema,
	MemberTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
