// Package aws provides AWS API client functionality.
package aws

import "time"

// Opt-in states reported by EC2 DescribeRegions.
const (
	OptInNotRequired = "opt-in-not-required"
	OptedIn          = "opted-in"
	NotOptedIn       = "not-opted-in"
)

// Region represents an AWS region together with its opt-in state.
type Region struct {
	Name        string
	OptInStatus string
}

// Enabled returns true if resources can exist in the region, meaning it is
// enabled by default or has been explicitly opted into.
func (r Region) Enabled() bool {
	return r.OptInStatus == OptInNotRequired || r.OptInStatus == OptedIn
}

// Account represents one member account of an AWS Organization.
type Account struct {
	ID   string
	Name string
}

// Credentials is a short-lived credential set scoped to a single account,
// obtained from one STS AssumeRole call.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiration      time.Time
}

// DBResource represents an RDS database instance or Aurora cluster.
type DBResource struct {
	Identifier    string
	Engine        string
	EngineVersion string
	InstanceClass string // empty for clusters
	Status        string
	Cluster       bool
}
