package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// The overlap constraint is the backstop for the booking conflict
// check; a failure installing it must surface instead of being
// swallowed at startup.
func TestEnsureOverlapConstraint_SurfacesStoreErrors(t *testing.T) {
	// Nothing listens on port 1, so the first Exec fails.
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=1 user=clinic dbname=clinic sslmode=disable connect_timeout=1",
	}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	require.NoError(t, err)

	assert.Error(t, ensureOverlapConstraint(db))
}
