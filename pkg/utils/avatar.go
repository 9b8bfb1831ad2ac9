package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const gravatarBase = "//www.gravatar.com/avatar/"

// GravatarURL derives the avatar for an email address: 200px, PG rated,
// mystery-person fallback. The same email always yields the same URL.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return gravatarBase + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
