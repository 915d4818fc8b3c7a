package scanner

import "github.com/crossfleet/rds-inventory/internal/aws"

// Reporter receives scan events as they occur. Events stream in traversal
// order; nothing is batched for end-of-run delivery.
type Reporter interface {
	// RegionDiscovered is emitted once per eligible region before any
	// account work begins.
	RegionDiscovered(region string)

	// AccountStarted is emitted when the scanner begins work on an account.
	AccountStarted(account aws.Account)

	// AccountAssumeFailed is emitted when the global role assumption for an
	// account fails. The failure is account-wide: no region listing is
	// attempted.
	AccountAssumeFailed(account aws.Account, err error)

	// ResourceFound is emitted once per discovered database resource.
	ResourceFound(account aws.Account, region string, resource aws.DBResource)

	// RegionEmpty is emitted when a region listing succeeds but holds no
	// resources.
	RegionEmpty(account aws.Account, region string)

	// RegionFailed is emitted when a region listing fails terminally in the
	// global pass.
	RegionFailed(account aws.Account, region string, err error)

	// RetryScheduled is emitted when a region listing hit the
	// credential-endpoint mismatch and was queued for the regional pass.
	RetryScheduled(account aws.Account, region string)

	// RetrySucceeded is emitted when the regional pass completes a listing
	// that the global pass deferred. The resources themselves arrive as
	// ResourceFound events immediately before it.
	RetrySucceeded(account aws.Account, region string, resources int)

	// RetryFailed is emitted when the regional pass fails for a deferred
	// pair. There is no further retry.
	RetryFailed(account aws.Account, region string, err error)
}

// nopReporter discards all events.
type nopReporter struct{}

func (nopReporter) RegionDiscovered(string)                           {}
func (nopReporter) AccountStarted(aws.Account)                        {}
func (nopReporter) AccountAssumeFailed(aws.Account, error)            {}
func (nopReporter) ResourceFound(aws.Account, string, aws.DBResource) {}
func (nopReporter) RegionEmpty(aws.Account, string)                   {}
func (nopReporter) RegionFailed(aws.Account, string, error)           {}
func (nopReporter) RetryScheduled(aws.Account, string)                {}
func (nopReporter) RetrySucceeded(aws.Account, string, int)           {}
func (nopReporter) RetryFailed(aws.Account, string, error)            {}
