package persistence

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

const (
	DriverMysql  = "mysql"
	DriverSqlite = "sqlite3"
)

type DatabaseConfig struct {
	DriverType string
	DriverArgs string
	LogMode    bool
}

func ParseDatabaseConfig(driverType, driverArgs string) (*DatabaseConfig, error) {
	switch driverType {
	case DriverMysql, DriverSqlite:
	case "sqlite":
		driverType = DriverSqlite
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", driverType)
	}
	if driverArgs == "" {
		return nil, errors.New("database dsn is required")
	}
	return &DatabaseConfig{DriverType: driverType, DriverArgs: driverArgs}, nil
}

// PrepareMysqlDatabase creates the database named in the DSN if it is missing.
func PrepareMysqlDatabase(driverArgs string) error {
	cfg, err := mysql.ParseDSN(driverArgs)
	if err != nil {
		return err
	}
	databaseName := cfg.DBName
	if databaseName == "" {
		return errors.New("database name is missing in dsn")
	}
	cfg.DBName = ""

	db, err := sql.Open(DriverMysql, cfg.FormatDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec("CREATE DATABASE IF NOT EXISTS `" + databaseName + "` DEFAULT CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci")
	return err
}
