package models

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

// SearchRegex builds a case-insensitive substring filter from a
// user-supplied search term. Quoting keeps regex metacharacters literal,
// so "a(b" searches for the text a(b instead of erroring.
func SearchRegex(term string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
}
