package db

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNWithStatementTimeoutURLForm(t *testing.T) {
	got := dsnWithStatementTimeout("postgres://app:secret@db:5432/glambook?sslmode=disable", 15*time.Second)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "-c statement_timeout=15000", u.Query().Get("options"))
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}

func TestDSNWithStatementTimeoutKeywordForm(t *testing.T) {
	got := dsnWithStatementTimeout("host=db user=app dbname=glambook", 5*time.Second)

	assert.Equal(t, "host=db user=app dbname=glambook options='-c statement_timeout=5000'", got)
}

func TestDSNWithStatementTimeoutLeavesExistingOptions(t *testing.T) {
	withOpts := "postgres://app@db/glambook?options=-c%20statement_timeout%3D1000"
	assert.Equal(t, withOpts, dsnWithStatementTimeout(withOpts, 15*time.Second))

	keyword := "host=db options='-c statement_timeout=1000'"
	assert.Equal(t, keyword, dsnWithStatementTimeout(keyword, 15*time.Second))
}

func TestDSNWithStatementTimeoutZeroIsNoop(t *testing.T) {
	dsn := "postgres://app@db/glambook"
	assert.Equal(t, dsn, dsnWithStatementTimeout(dsn, 0))
}
