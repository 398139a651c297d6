package youtube

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"google.golang.org/api/googleapi"

	"vision/internal/quota"
	"vision/internal/retry"
)

func apiError(code int, reason string) error {
	gerr := &googleapi.Error{Code: code, Message: "remote said no"}
	if reason != "" {
		gerr.Errors = []googleapi.ErrorItem{{Reason: reason}}
	}
	return gerr
}

func TestClassifyErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"403 quotaExceeded", apiError(403, "quotaExceeded"), ErrQuotaExhausted},
		{"403 dailyLimitExceeded", apiError(403, "dailyLimitExceeded"), ErrQuotaExhausted},
		{"403 rateLimitExceeded", apiError(403, "rateLimitExceeded"), ErrQuotaExhausted},
		{"404", apiError(404, "videoNotFound"), ErrNotFound},
		{"wrapped 403 quota", fmt.Errorf("call: %w", apiError(403, "quotaExceeded")), ErrQuotaExhausted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.in)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("classify = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tc.want) {
				t.Errorf("classify = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClassifyPassesThroughOtherErrors(t *testing.T) {
	// A 403 without a recognized reason is a permission problem, not quota.
	for _, err := range []error{
		apiError(403, "forbidden"),
		apiError(500, "backendError"),
		errors.New("connection reset"),
	} {
		got := classify(err)
		if errors.Is(got, ErrQuotaExhausted) || errors.Is(got, ErrNotFound) {
			t.Errorf("classify(%v) = %v, want passthrough", err, got)
		}
	}
}

func testClient(acct *quota.Accountant) *Client {
	return &Client{
		quota:   acct,
		retry:   retry.RetryConfig{MaxAttempts: 3, Delay: time.Millisecond},
		timeout: time.Second,
	}
}

func TestDoMarksAccountantExhaustedOnQuotaError(t *testing.T) {
	acct := quota.New(0)
	c := testClient(acct)

	calls := 0
	err := c.do(context.Background(), quota.CostList, func(context.Context) error {
		calls++
		return apiError(403, "quotaExceeded")
	})
	if !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("do = %v, want ErrQuotaExhausted", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (quota errors must not be retried)", calls)
	}
	if !acct.Exhausted() {
		t.Error("accountant not marked exhausted after remote over-limit")
	}

	// Subsequent calls are refused locally, no remote attempt.
	calls = 0
	err = c.do(context.Background(), quota.CostList, func(context.Context) error {
		calls++
		return nil
	})
	if !errors.Is(err, ErrQuotaExhausted) {
		t.Errorf("follow-up do = %v, want ErrQuotaExhausted", err)
	}
	if calls != 0 {
		t.Errorf("follow-up calls = %d, want 0 after exhaustion", calls)
	}
}

func TestDoStopsOnNotFoundButRetriesTransport(t *testing.T) {
	c := testClient(quota.New(0))

	calls := 0
	err := c.do(context.Background(), quota.CostList, func(context.Context) error {
		calls++
		return apiError(404, "videoNotFound")
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("do = %v, want ErrNotFound", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (not-found must not be retried)", calls)
	}

	calls = 0
	err = c.do(context.Background(), quota.CostList, func(context.Context) error {
		calls++
		return apiError(500, "backendError")
	})
	if err == nil {
		t.Fatal("expected error for persistent transport failure")
	}
	if errors.Is(err, ErrQuotaExhausted) || errors.Is(err, ErrNotFound) {
		t.Errorf("transport failure misclassified: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3 (transport failures are retried)", calls)
	}
}
