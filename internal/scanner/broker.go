package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/crossfleet/rds-inventory/internal/aws"
)

// EndpointPolicy selects which STS endpoint issues a session. The zero
// value requests the location-agnostic global endpoint.
type EndpointPolicy struct {
	Region string
}

// GlobalEndpoint requests issuance from the global STS endpoint.
func GlobalEndpoint() EndpointPolicy {
	return EndpointPolicy{}
}

// RegionalEndpoint requests issuance pinned to one region's STS endpoint.
func RegionalEndpoint(region string) EndpointPolicy {
	return EndpointPolicy{Region: region}
}

func (p EndpointPolicy) String() string {
	if p.Region == "" {
		return "global"
	}
	return "regional(" + p.Region + ")"
}

// broker exchanges the base identity for account-scoped credential leases.
// It performs exactly one assumption per call and never retries; retry
// policy belongs to the traversal passes.
type broker struct {
	client   aws.Client
	roleName string
	duration time.Duration
}

// roleARN forms the role reference for an account from the configured role
// name.
func (b *broker) roleARN(account aws.Account) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", account.ID, b.roleName)
}

func (b *broker) sessionName(account aws.Account) string {
	return sessionNamePrefix + account.ID
}

// assume requests one role assumption under the given endpoint policy,
// always starting from the base identity.
func (b *broker) assume(ctx context.Context, account aws.Account, policy EndpointPolicy) (*aws.Credentials, error) {
	return b.client.AssumeRole(ctx, b.roleARN(account), b.sessionName(account), b.duration, policy.Region)
}
