package normalizer

import (
	"strings"

	"github.com/ppiankov/incidentlens/internal/models"
)

var devicePrefixes = map[string]models.DeviceType{
	"ap": models.DeviceAccessPoint,
	"sw": models.DeviceSwitch,
	"rt": models.DeviceRouter,
	"fw": models.DeviceFirewall,
	"lb": models.DeviceLoadBalancer,
}

// ClassifyDevice derives the device type from the first two characters
// of the hostname, case-insensitively.
func ClassifyDevice(hostname string) models.DeviceType {
	runes := []rune(hostname)
	if len(runes) < 2 {
		return models.DeviceUnknown
	}
	prefix := strings.ToLower(string(runes[:2]))
	if t, ok := devicePrefixes[prefix]; ok {
		return t
	}
	return models.DeviceUnknown
}
