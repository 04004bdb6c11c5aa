package engine

import (
	"errors"
	"fmt"
)

// Hard limits on one extension's storage area. These mirror the
// storage.local defaults; there is no mechanism to raise them.
//
// Note there are also "operations per minute" style limits in the browser
// API surface, which are not enforced here.
const (
	// QuotaBytes caps the serialized size of the whole record.
	QuotaBytes = 102_400

	// QuotaBytesPerItem caps len(key) + len(serialized value) for one item,
	// counted in UTF-8 bytes. The serialized value includes surrounding
	// quotes for strings.
	QuotaBytesPerItem = 8_192

	// MaxItems caps the number of keys in one record.
	MaxItems = 512
)

// QuotaReason identifies which limit a mutation tripped.
type QuotaReason string

const (
	// ReasonTotalBytes: the serialized record would exceed QuotaBytes.
	ReasonTotalBytes QuotaReason = "TotalBytes"

	// ReasonItemBytes: one key+value would reach QuotaBytesPerItem.
	ReasonItemBytes QuotaReason = "ItemBytes"

	// ReasonMaxItems: a new key would push the record past MaxItems.
	// Updating an existing key never trips this: the key is removed from
	// the working map before the count is checked.
	ReasonMaxItems QuotaReason = "MaxItems"
)

// QuotaError is returned when a Set would violate a storage quota.
// The whole mutation is aborted: nothing was persisted.
type QuotaError struct {
	Reason      QuotaReason
	ExtensionID string
	Key         string // offending key for ItemBytes/MaxItems, empty for TotalBytes
}

// Error implements the error interface.
func (e *QuotaError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("quota exceeded (%s) for extension %q at key %q", e.Reason, e.ExtensionID, e.Key)
	}
	return fmt.Sprintf("quota exceeded (%s) for extension %q", e.Reason, e.ExtensionID)
}

// IsQuotaError reports whether err is a QuotaError.
// Uses errors.As to handle wrapped errors.
func IsQuotaError(err error) bool {
	var qe *QuotaError
	return errors.As(err, &qe)
}

// QuotaReasonOf extracts the reason from a QuotaError, or "" if err is not one.
func QuotaReasonOf(err error) QuotaReason {
	var qe *QuotaError
	if errors.As(err, &qe) {
		return qe.Reason
	}
	return ""
}
