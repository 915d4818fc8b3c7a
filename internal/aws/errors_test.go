package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
)

func TestIsEndpointMismatch(t *testing.T) {
	t.Run("mismatch codes", func(t *testing.T) {
		for _, code := range []string{"InvalidClientTokenId", "UnrecognizedClientException", "AuthFailure"} {
			err := &smithy.GenericAPIError{Code: code, Message: "token invalid"}
			if !IsEndpointMismatch(err) {
				t.Fatalf("expected %s to classify as endpoint mismatch", code)
			}
		}
	})

	t.Run("wrapped mismatch", func(t *testing.T) {
		err := fmt.Errorf("describing DB instances: %w",
			&smithy.GenericAPIError{Code: "InvalidClientTokenId"})
		if !IsEndpointMismatch(err) {
			t.Fatal("expected wrapped API error to classify as endpoint mismatch")
		}
	})

	t.Run("other api error", func(t *testing.T) {
		err := &smithy.GenericAPIError{Code: "AccessDenied", Message: "not authorized"}
		if IsEndpointMismatch(err) {
			t.Fatal("expected AccessDenied not to classify as endpoint mismatch")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if IsEndpointMismatch(errors.New("connection refused")) {
			t.Fatal("expected plain error not to classify as endpoint mismatch")
		}
	})
}

func TestErrorCode(t *testing.T) {
	err := fmt.Errorf("assuming role: %w", &smithy.GenericAPIError{Code: "AccessDenied"})
	if got := ErrorCode(err); got != "AccessDenied" {
		t.Fatalf("expected code AccessDenied, got %q", got)
	}
	if got := ErrorCode(errors.New("boom")); got != "" {
		t.Fatalf("expected empty code for plain error, got %q", got)
	}
}
