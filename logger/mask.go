package logger

import (
	"regexp"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ============================================================================
// MASKING
// ============================================================================
// In production personal and financial values are masked before they reach
// the log output. Development logs keep them readable.

var maskSensitive bool

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	uuidRegex  = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// SetMasking forces masking on or off.
func SetMasking(enabled bool) {
	maskSensitive = enabled
}

// MaskString masks emails and shortens UUIDs.
func MaskString(input string) string {
	if !maskSensitive {
		return input
	}
	result := emailRegex.ReplaceAllString(input, "***@***.***")
	return uuidRegex.ReplaceAllStringFunc(result, shortenID)
}

// MaskAmount hides a monetary amount
func MaskAmount(amount decimal.Decimal) string {
	if maskSensitive {
		return "***"
	}
	return amount.StringFixed(2)
}

// MaskID keeps the first 8 characters of an identifier
func MaskID(id string) string {
	if !maskSensitive {
		return id
	}
	return shortenID(id)
}

// MaskEmail hides an email address
func MaskEmail(email string) string {
	if !maskSensitive {
		return email
	}
	return "***@***.***"
}

func shortenID(id string) string {
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

// ============================================================================
// FIELDS
// ============================================================================

func UserID(id string) zap.Field {
	return zap.String("user_id", MaskID(id))
}

func Email(email string) zap.Field {
	return zap.String("email", MaskEmail(email))
}

func Amount(amount decimal.Decimal) zap.Field {
	return zap.String("amount", MaskAmount(amount))
}

func Path(path string) zap.Field {
	return zap.String("path", MaskString(path))
}
