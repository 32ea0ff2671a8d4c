package persistence

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestParseDatabaseConfig(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should accept mysql and sqlite drivers", func(t *testing.T) {
		c, err := ParseDatabaseConfig("mysql", "root:root@(127.0.0.1:3306)/flyer")
		Expect(err).To(BeNil())
		Expect(*c).To(Equal(DatabaseConfig{DriverType: DriverMysql, DriverArgs: "root:root@(127.0.0.1:3306)/flyer"}))

		c, err = ParseDatabaseConfig("sqlite", "flyer.db")
		Expect(err).To(BeNil())
		Expect(c.DriverType).To(Equal(DriverSqlite))
	})

	t.Run("should reject unknown drivers and empty dsn", func(t *testing.T) {
		_, err := ParseDatabaseConfig("postgres", "x")
		Expect(err).To(MatchError("unsupported database driver 'postgres'"))

		_, err = ParseDatabaseConfig("mysql", "")
		Expect(err).To(MatchError("database dsn is required"))
	})
}

func TestPrepareMysqlDatabase(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should require a database name", func(t *testing.T) {
		Expect(PrepareMysqlDatabase("root:root@(127.0.0.1:3306)/")).To(MatchError("database name is missing in dsn"))
	})
}
