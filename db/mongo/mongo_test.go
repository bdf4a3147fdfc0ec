package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptions(t *testing.T) {
	opts := NewMongoDB("mongodb://db:27017", "club").clientOptions()
	require.NoError(t, opts.Validate())
	require.NotNil(t, opts.AppName)
	assert.Equal(t, "vinyasaclub", *opts.AppName)
	require.NotNil(t, opts.ServerSelectionTimeout)
	assert.Equal(t, connectTimeout, *opts.ServerSelectionTimeout)
	assert.Equal(t, []string{"db:27017"}, opts.Hosts)
}

func TestConnect_RejectsBadSettings(t *testing.T) {
	mg := NewMongoDB("not-a-uri", "club")
	err := mg.Connect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid MONGO_URL")
	assert.Nil(t, mg.Client)
	assert.NoError(t, mg.Disconnect())

	err = NewMongoDB("mongodb://db:27017", "").Connect()
	assert.EqualError(t, err, "mongo database name is empty")
}
