package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithAppName(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/club?sslmode=disable": "postgres://u:p@db:5432/club?application_name=vinyasaclub&sslmode=disable",
		"postgresql://db/club":                        "postgresql://db/club?application_name=vinyasaclub",
		"postgres://db/club?application_name=ops":     "postgres://db/club?application_name=ops",
		"host=db dbname=club sslmode=disable":         "host=db dbname=club sslmode=disable application_name=vinyasaclub",
		"host=db application_name=ops":                "host=db application_name=ops",
	}
	for in, want := range tests {
		got, err := WithAppName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestConnect_RejectsMalformedURL(t *testing.T) {
	pg := NewPostgresDB("postgres://%zz")
	err := pg.Connect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid POSTGRES_URL")
	assert.Nil(t, pg.Conn)
	assert.NoError(t, pg.Disconnect())
}
