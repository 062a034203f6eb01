package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 200 {
		slug = strings.TrimRight(slug[:200], "-")
	}
	if slug == "" {
		slug = "product"
	}
	return slug
}

// GenerateOrderNumber returns HB-YYMMDD-NNNNNN.
func GenerateOrderNumber(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 1_000_000)
	}
	return fmt.Sprintf("HB-%s-%06d", now.UTC().Format("060102"), n.Int64())
}
