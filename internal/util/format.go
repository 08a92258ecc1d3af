package util

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatPHP renders an amount in centavos as a display price.
// Example: 125000000 -> "₱1,250,000.00".
func FormatPHP(amount int64) string {
	pesos := amount / 100
	centavos := amount % 100
	return fmt.Sprintf("₱%s.%02d", humanize.Comma(pesos), centavos)
}

// FormatMileage renders a mileage reading for notifications.
// Example: 45000 -> "45,000 km".
func FormatMileage(km int32) string {
	return fmt.Sprintf("%s km", humanize.Comma(int64(km)))
}

// Helper to shorten titles in notification bodies.
func TruncateContent(title string, maxLength int) string {
	if len(title) <= maxLength {
		return title
	}
	return title[:maxLength] + "..."
}

func BoolPointer(b bool) *bool {
	return &b
}

func StringPointer(s string) *string {
	return &s
}

func Int32Pointer(i int32) *int32 {
	return &i
}

func Int64Pointer(i int64) *int64 {
	return &i
}

func Float64Pointer(f float64) *float64 {
	return &f
}

func TimePointer(t time.Time) *time.Time {
	return &t
}
