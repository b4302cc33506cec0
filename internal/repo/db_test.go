package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithSSLMode(t *testing.T) {
	assert.Equal(t, "postgres://db/x?sslmode=require", withSSLMode("postgres://db/x"))
	assert.Equal(t, "postgres://db/x?a=b&sslmode=require", withSSLMode("postgres://db/x?a=b"))
	assert.Equal(t, "user=u dbname=d sslmode=require", withSSLMode("user=u dbname=d"))
	assert.Equal(t, "user=u sslmode=disable", withSSLMode("user=u sslmode=disable"))
}
