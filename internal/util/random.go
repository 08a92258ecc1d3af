package util

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gosimple/slug"
	"github.com/lithammer/shortuuid/v4"
)

// GenerateRandomSlug builds a URL slug from the listing title plus a short
// random suffix, so two sellers listing the same car never collide.
func GenerateRandomSlug(name string) string {
	baseSlug := slug.Make(name)
	shortID := shortuuid.New()[:8]

	return fmt.Sprintf("%s-%s", baseSlug, shortID)
}

// GenerateListingCode returns a human-readable listing reference like
// "AH-240830-X7K2Q".
func GenerateListingCode() string {
	datePrefix := time.Now().Format("060102")
	return fmt.Sprintf("AH-%s-%s", datePrefix, randomString(5))
}

// GenerateTransactionCode returns a unique reference for a recorded sale.
func GenerateTransactionCode() string {
	now := time.Now()
	return fmt.Sprintf("TX-%s-%d%s", now.Format("060102"), now.UnixNano()%100000, randomString(5))
}

func randomString(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
