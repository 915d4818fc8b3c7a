package scanner

import "time"

// DefaultFallbackRegion is scanned when region discovery fails.
const DefaultFallbackRegion = "us-east-1"

// DefaultSessionDuration bounds each credential lease.
const DefaultSessionDuration = time.Hour

// Role session names are formed from this prefix plus the account ID.
const sessionNamePrefix = "rds-inventory-"
