package youtube

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Sentinel errors for the caller-facing taxonomy. Anything else coming out
// of the client is a transport failure; callers decide skip vs abort.
var (
	// ErrQuotaExhausted: the API rejected the call as over-limit. Callers
	// should stop issuing non-essential calls but keep already collected data.
	ErrQuotaExhausted = errors.New("youtube: quota exhausted")

	// ErrNotFound: the requested entity does not exist (deleted video,
	// terminated channel). Safe to skip.
	ErrNotFound = errors.New("youtube: not found")
)

// classify maps a googleapi error onto the sentinel taxonomy. Transport and
// unknown API errors pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch {
	case gerr.Code == http.StatusForbidden && hasReason(gerr, "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded"):
		return fmt.Errorf("%w: %s", ErrQuotaExhausted, gerr.Message)
	case gerr.Code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, gerr.Message)
	}
	return err
}

func hasReason(gerr *googleapi.Error, reasons ...string) bool {
	for _, item := range gerr.Errors {
		for _, r := range reasons {
			if item.Reason == r {
				return true
			}
		}
	}
	return false
}
