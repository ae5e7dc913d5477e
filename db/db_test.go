package db

import (
	"testing"

	"ProgressiveBBS/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{DBUser: "root", DBPassword: "pw", DBHost: "127.0.0.1", DBPort: "3306", DBName: "bbs"}
	assert.Equal(t, "root:pw@tcp(127.0.0.1:3306)/bbs?charset=utf8mb4&parseTime=True&loc=Local", DSN(cfg))
}

func TestInitDB_Uninitialized(t *testing.T) {
	assert.Error(t, InitDB(nil))
}

func TestCloseWithoutConnections(t *testing.T) {
	assert.NoError(t, CloseGormDB())
	assert.NoError(t, CloseRedis())
}
