// Package scanner implements the two-pass cross-account RDS enumeration.
//
// Pass 1 assumes the per-account role via the global STS endpoint and lists
// every eligible region. Listings that fail with the credential-endpoint
// mismatch are deferred to pass 2, which re-assumes the role against the
// failing region's own STS endpoint and retries the listing exactly once.
// No failure aborts the enumeration of sibling accounts or regions.
package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crossfleet/rds-inventory/internal/aws"
)

// Config carries the immutable scan parameters.
type Config struct {
	// RoleName is the IAM role assumed in every target account.
	RoleName string

	// SessionDuration bounds each credential lease. Defaults to
	// DefaultSessionDuration.
	SessionDuration time.Duration

	// Regions, when non-empty, bypasses region discovery.
	Regions []string

	// Source yields the target accounts.
	Source AccountSource

	// Reporter receives the event stream. Defaults to a no-op reporter.
	Reporter Reporter

	// Logger, if nil, defaults to the standard logrus logger.
	Logger *logrus.Logger
}

// FailureRecord defers one (account, region) listing from the global pass
// to the regional pass. Each record is consumed exactly once.
type FailureRecord struct {
	Account aws.Account
	Region  string
}

// Scanner drives the enumeration. It is not safe for concurrent use; a run
// is a single sequential traversal.
type Scanner struct {
	config   Config
	client   aws.Client
	broker   *broker
	reporter Reporter
	log      *logrus.Logger

	states   stateTable
	worklist []FailureRecord
}

// New creates a Scanner with the given client and configuration.
func New(client aws.Client, config Config) (*Scanner, error) {
	if config.RoleName == "" {
		return nil, fmt.Errorf("role name must be configured")
	}
	if config.Source == nil {
		return nil, fmt.Errorf("account source must be configured")
	}
	if config.SessionDuration == 0 {
		config.SessionDuration = DefaultSessionDuration
	}
	if config.Reporter == nil {
		config.Reporter = nopReporter{}
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	return &Scanner{
		config:   config,
		client:   client,
		broker:   &broker{client: client, roleName: config.RoleName, duration: config.SessionDuration},
		reporter: config.Reporter,
		log:      config.Logger,
		states:   make(stateTable),
	}, nil
}

// Run executes both passes to completion. Per-account and per-region
// failures surface as events, never as an error; Run fails only when
// nothing can be scanned at all.
func (s *Scanner) Run(ctx context.Context) error {
	caller, err := s.client.GetCallerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("verifying caller identity: %w", err)
	}
	s.log.WithField("caller", caller).Info("starting scan")

	regions := s.resolveRegions(ctx)
	for _, region := range regions {
		s.reporter.RegionDiscovered(region)
	}

	accounts, err := s.config.Source.Accounts(ctx)
	if err != nil {
		return fmt.Errorf("resolving accounts: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"accounts": len(accounts),
		"regions":  len(regions),
	}).Info("resolved scan targets")

	for _, account := range accounts {
		for _, region := range regions {
			s.states.set(account.ID, region, StatePending)
		}
	}

	s.globalPass(ctx, accounts, regions)
	s.regionalPass(ctx)
	return nil
}

// globalPass assumes the role once per account via the global STS endpoint
// and lists every region under that lease. The lease is discarded when the
// account's region loop completes.
func (s *Scanner) globalPass(ctx context.Context, accounts []aws.Account, regions []string) {
	for _, account := range accounts {
		s.reporter.AccountStarted(account)

		creds, err := s.broker.assume(ctx, account, GlobalEndpoint())
		if err != nil {
			for _, region := range regions {
				s.states.set(account.ID, region, StateFailed)
			}
			s.reporter.AccountAssumeFailed(account, err)
			continue
		}
		account = s.enrichName(ctx, account, *creds)

		for _, region := range regions {
			s.states.set(account.ID, region, StateListingGlobal)
			resources, err := s.client.ListDBResources(ctx, *creds, region)
			switch {
			case err == nil:
				s.emitResources(account, region, resources)
				s.states.set(account.ID, region, StateDone)
			case aws.IsEndpointMismatch(err):
				s.states.set(account.ID, region, StateNeedsRegionalRetry)
				s.worklist = append(s.worklist, FailureRecord{Account: account, Region: region})
				s.reporter.RetryScheduled(account, region)
			default:
				s.states.set(account.ID, region, StateFailed)
				s.reporter.RegionFailed(account, region, err)
			}
		}
	}
}

// regionalPass drains the worklist built by the global pass, re-assuming
// the role against each deferred region's STS endpoint. Every record gets
// exactly one attempt; there is no third pass.
func (s *Scanner) regionalPass(ctx context.Context) {
	records := s.worklist
	s.worklist = nil

	for _, rec := range records {
		creds, err := s.broker.assume(ctx, rec.Account, RegionalEndpoint(rec.Region))
		if err != nil {
			s.states.set(rec.Account.ID, rec.Region, StateFailed)
			s.reporter.RetryFailed(rec.Account, rec.Region, err)
			continue
		}

		s.states.set(rec.Account.ID, rec.Region, StateListingRegional)
		resources, err := s.client.ListDBResources(ctx, *creds, rec.Region)
		if err != nil {
			s.states.set(rec.Account.ID, rec.Region, StateFailed)
			s.reporter.RetryFailed(rec.Account, rec.Region, err)
			continue
		}

		s.emitResources(rec.Account, rec.Region, resources)
		s.states.set(rec.Account.ID, rec.Region, StateDone)
		s.reporter.RetrySucceeded(rec.Account, rec.Region, len(resources))
	}
}

// emitResources streams one completed region listing.
func (s *Scanner) emitResources(account aws.Account, region string, resources []aws.DBResource) {
	if len(resources) == 0 {
		s.reporter.RegionEmpty(account, region)
		return
	}
	for _, r := range resources {
		s.reporter.ResourceFound(account, region, r)
	}
}

// enrichName swaps a bare account ID display name for the account alias
// when one is visible under the lease. Failures here are cosmetic and
// ignored.
func (s *Scanner) enrichName(ctx context.Context, account aws.Account, creds aws.Credentials) aws.Account {
	if account.Name != account.ID {
		return account
	}
	alias, err := s.client.GetAccountAlias(ctx, creds)
	if err == nil && alias != nil && *alias != "" {
		account.Name = *alias
	}
	return account
}
