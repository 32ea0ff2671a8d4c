package testinfra

import (
	"context"
	"flyerboard/persistence"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type TestDatabase struct {
	TestDatabaseName string
	TestDatabaseDir  string
	DS               *persistence.DataSourceManager
}

// StartTestDatabase connects to TEST_MYSQL_SERVICE (e.g. root:root@(127.0.0.1:3306)) when it is set,
// otherwise a throwaway sqlite file is used.
func StartTestDatabase(baseName string) *TestDatabase {
	if mysqlSvc := os.Getenv("TEST_MYSQL_SERVICE"); mysqlSvc != "" {
		return StartMysqlTestDatabase(baseName, mysqlSvc)
	}
	return StartSqliteTestDatabase(baseName)
}

func StartMysqlTestDatabase(baseName, mysqlSvc string) *TestDatabase {
	databaseName := baseName + "_test_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	dbConfig := &persistence.DatabaseConfig{
		DriverType: persistence.DriverMysql,
		DriverArgs: mysqlSvc + "/" + databaseName + "?charset=utf8mb4&parseTime=True&loc=Local&timeout=5s",
	}

	// create database (no conflict)
	if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
		log.Fatalf("failed to prepare database %v\n", err)
	}

	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		defer ds.Stop()
		log.Fatalf("database conneciton failed %v\n", err)
	}

	return &TestDatabase{TestDatabaseName: databaseName, DS: ds}
}

func StartSqliteTestDatabase(baseName string) *TestDatabase {
	dir, err := os.MkdirTemp("", baseName+"_test_")
	if err != nil {
		log.Fatalf("failed to create test database dir %v\n", err)
	}

	dbConfig := &persistence.DatabaseConfig{
		DriverType: persistence.DriverSqlite,
		DriverArgs: filepath.Join(dir, "test.db") + "?_busy_timeout=5000",
	}
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		_ = os.RemoveAll(dir)
		log.Fatalf("database conneciton failed %v\n", err)
	}
	return &TestDatabase{TestDatabaseDir: dir, DS: ds}
}

func StopTestDatabase(testDatabase *TestDatabase) {
	if testDatabase == nil || testDatabase.DS == nil {
		return
	}
	if testDatabase.TestDatabaseName != "" {
		if db := testDatabase.DS.GormDB(context.Background()); db != nil {
			if err := db.Exec("DROP DATABASE " + testDatabase.TestDatabaseName).Error; err != nil {
				log.Println("failed to drop test database: " + testDatabase.TestDatabaseName)
			} else {
				log.Println("test database " + testDatabase.TestDatabaseName + " dropped")
			}
		}
	}

	// close connection
	testDatabase.DS.Stop()

	if testDatabase.TestDatabaseDir != "" {
		_ = os.RemoveAll(testDatabase.TestDatabaseDir)
	}
}
