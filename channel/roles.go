// Package channel maps IVS channel identifiers onto the fixed set of camera
// positions a recording can originate from.
package channel

import "strings"

// Role is the logical position of the stream source behind a channel.
type Role string

const (
	RoleOverview     Role = "overview"
	RoleInstruments  Role = "instruments"
	RoleCaptain      Role = "captain"
	RoleFirstOfficer Role = "first-officer"
	RoleUnknown      Role = "unknown"
)

// roleOrder fixes the scan order for first-match-wins resolution.
var roleOrder = []Role{RoleOverview, RoleInstruments, RoleCaptain, RoleFirstOfficer}

// RoleMap holds the channel ARN configured for each role. Missing entries are
// skipped during resolution.
type RoleMap map[Role]string

// NewRoleMap builds a RoleMap from the flat key=value mapping carried by the
// CLI flag or the per-request override header. Keys that don't name a known
// role are ignored.
func NewRoleMap(m map[string]string) RoleMap {
	roles := RoleMap{}
	for _, role := range roleOrder {
		if arn, ok := m[string(role)]; ok && arn != "" {
			roles[role] = arn
		}
	}
	return roles
}

// Resolve maps a candidate string onto a Role. The candidate is either a full
// channel ARN (matched exactly) or a request path in which the channel id (the
// token after the last "/" of the configured ARN) appears as a segment. The
// first configured role that matches wins; no match yields RoleUnknown.
func Resolve(candidate string, roles RoleMap) Role {
	for _, role := range roleOrder {
		arn, ok := roles[role]
		if !ok {
			continue
		}
		if candidate == arn {
			return role
		}
		if id := channelID(arn); id != "" && strings.Contains(candidate, id) {
			return role
		}
	}
	return RoleUnknown
}

// channelID extracts the channel id from an IVS channel ARN, i.e. the token
// after the last "/".
func channelID(arn string) string {
	idx := strings.LastIndex(arn, "/")
	if idx < 0 || idx == len(arn)-1 {
		return ""
	}
	return arn[idx+1:]
}
