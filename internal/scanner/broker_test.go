package scanner

import (
	"context"
	"testing"
	"time"

	"github.com/crossfleet/rds-inventory/internal/aws"
)

func TestBrokerRoleARN(t *testing.T) {
	b := &broker{roleName: "MyReadOnlyRole"}
	account := aws.Account{ID: "123456789012", Name: "prod"}

	want := "arn:aws:iam::123456789012:role/MyReadOnlyRole"
	if got := b.roleARN(account); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestBrokerAssumePassesPolicy(t *testing.T) {
	client := &fakeClient{}
	b := &broker{client: client, roleName: "MyReadOnlyRole", duration: 2 * time.Hour}
	account := aws.Account{ID: "123456789012"}

	if _, err := b.assume(context.Background(), account, GlobalEndpoint()); err != nil {
		t.Fatalf("global assume failed: %v", err)
	}
	if _, err := b.assume(context.Background(), account, RegionalEndpoint("eu-west-1")); err != nil {
		t.Fatalf("regional assume failed: %v", err)
	}

	if len(client.assumeCalls) != 2 {
		t.Fatalf("expected two assume calls, got %d", len(client.assumeCalls))
	}
	if client.assumeCalls[0].region != "" {
		t.Fatalf("expected global issuance, got region %q", client.assumeCalls[0].region)
	}
	if client.assumeCalls[1].region != "eu-west-1" {
		t.Fatalf("expected regional issuance, got region %q", client.assumeCalls[1].region)
	}
	for _, call := range client.assumeCalls {
		if call.duration != 2*time.Hour {
			t.Fatalf("expected fixed 2h duration, got %s", call.duration)
		}
		if call.session != "rds-inventory-123456789012" {
			t.Fatalf("unexpected session name %q", call.session)
		}
	}
}

func TestEndpointPolicyString(t *testing.T) {
	if got := GlobalEndpoint().String(); got != "global" {
		t.Fatalf("expected global, got %s", got)
	}
	if got := RegionalEndpoint("eu-west-1").String(); got != "regional(eu-west-1)" {
		t.Fatalf("expected regional(eu-west-1), got %s", got)
	}
}
