package apperrors

import "errors"

// BundleUnavailableError reports that a bundle cannot be priced right now and
// why. It is an expected business outcome, surfaced for user messaging, not
// an exceptional failure.
type BundleUnavailableError struct {
	BundleID string
	Reason   string
}

func (e *BundleUnavailableError) Error() string {
	return "bundle " + e.BundleID + " unavailable: " + e.Reason
}

// NewBundleUnavailable creates a BundleUnavailableError.
func NewBundleUnavailable(bundleID, reason string) error {
	return &BundleUnavailableError{BundleID: bundleID, Reason: reason}
}

// AsBundleUnavailable extracts the unavailability reason when err carries one.
func AsBundleUnavailable(err error) (*BundleUnavailableError, bool) {
	var target *BundleUnavailableError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
