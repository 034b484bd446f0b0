package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "hallo", sanitizeUTF8("hallo"))
	assert.Equal(t, "grüße", sanitizeUTF8("gr\xffüße"))
	assert.Equal(t, "", sanitizeUTF8("\xff\xfe"))
}
