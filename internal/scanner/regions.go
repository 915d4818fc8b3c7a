package scanner

import "context"

// resolveRegions returns the region names eligible for scanning, in the
// order the API returned them. A configured region list bypasses discovery
// entirely. Discovery failure is non-fatal and degrades to the fallback
// region.
func (s *Scanner) resolveRegions(ctx context.Context) []string {
	if len(s.config.Regions) > 0 {
		return s.config.Regions
	}

	regions, err := s.client.DescribeRegions(ctx)
	if err != nil {
		s.log.WithError(err).Warnf("region discovery failed, falling back to %s", DefaultFallbackRegion)
		return []string{DefaultFallbackRegion}
	}

	names := make([]string, 0, len(regions))
	for _, r := range regions {
		if r.Enabled() {
			names = append(names, r.Name)
		}
	}
	return names
}
