package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPHP(t *testing.T) {
	require.Equal(t, "₱1,250,000.00", FormatPHP(125000000))
	require.Equal(t, "₱585,000.50", FormatPHP(58500050))
	require.Equal(t, "₱0.99", FormatPHP(99))
	require.Equal(t, "₱0.00", FormatPHP(0))
}

func TestFormatMileage(t *testing.T) {
	require.Equal(t, "45,000 km", FormatMileage(45000))
	require.Equal(t, "0 km", FormatMileage(0))
}

func TestTruncateContent(t *testing.T) {
	require.Equal(t, "short", TruncateContent("short", 10))
	require.Equal(t, "exactly ten", TruncateContent("exactly ten", 11))
	require.Equal(t, "2019 Toyot...", TruncateContent("2019 Toyota Vios", 10))
}

func TestGenerateRandomSlug(t *testing.T) {
	s := GenerateRandomSlug("2019 Toyota Vios 1.3 XLE")
	require.True(t, strings.HasPrefix(s, "2019-toyota-vios-1-3-xle-"))

	// The random suffix keeps identical titles apart.
	require.NotEqual(t, GenerateRandomSlug("Same Title"), GenerateRandomSlug("Same Title"))
}

func TestGenerateListingCode(t *testing.T) {
	code := GenerateListingCode()
	require.Regexp(t, `^AH-\d{6}-[A-Z0-9]{5}$`, code)
}

func TestGenerateTransactionCode(t *testing.T) {
	code := GenerateTransactionCode()
	require.Regexp(t, `^TX-\d{6}-\d+[A-Z0-9]{5}$`, code)
}
