package config

import (
	"path"
	"strings"
)

// Normalize trims config patterns and removes empty values.
func (c *Config) Normalize() {
	if c == nil {
		return
	}
	c.ExcludeSites = normalizePatterns(c.ExcludeSites)
	c.ExcludeDevices = normalizePatterns(c.ExcludeDevices)
	c.Formats = ParseFormats(strings.Join(c.Formats, ","))
	c.Organization = strings.TrimSpace(c.Organization)
}

// IsSiteExcluded reports whether site matches exclude patterns.
func (c *Config) IsSiteExcluded(site string) bool {
	if c == nil || len(c.ExcludeSites) == 0 {
		return false
	}
	return matchesAny(c.ExcludeSites, site)
}

// IsDeviceExcluded reports whether a device hostname matches exclude patterns.
func (c *Config) IsDeviceExcluded(hostname string) bool {
	if c == nil || len(c.ExcludeDevices) == 0 {
		return false
	}
	return matchesAny(c.ExcludeDevices, hostname)
}

func matchesAny(patterns []string, value string) bool {
	normalized := normalizePattern(value)
	if normalized == "" {
		return false
	}
	for _, pattern := range patterns {
		if patternMatches(pattern, normalized) {
			return true
		}
	}
	return false
}

func normalizePatterns(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}

	normalized := make([]string, 0, len(values))
	for _, pattern := range values {
		p := normalizePattern(pattern)
		if p == "" {
			continue
		}
		normalized = append(normalized, p)
	}
	return normalized
}

func normalizePattern(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func patternMatches(pattern, value string) bool {
	normalizedPattern := normalizePattern(pattern)
	normalizedValue := normalizePattern(value)
	if normalizedPattern == "" || normalizedValue == "" {
		return false
	}

	// Invalid glob patterns are treated as exact matches.
	matched, err := path.Match(normalizedPattern, normalizedValue)
	if err == nil {
		return matched
	}
	return normalizedPattern == normalizedValue
}
