package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchRegexQuotesMetacharacters(t *testing.T) {
	filter := SearchRegex("a(b")
	assert.Equal(t, `a\(b`, filter["$regex"], "an unbalanced paren stays a literal, not a regex error")
	assert.Equal(t, "i", filter["$options"])

	assert.Equal(t, `shirt\.xl\*`, SearchRegex("shirt.xl*")["$regex"])
	assert.Equal(t, "plain", SearchRegex("plain")["$regex"])
}
