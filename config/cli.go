package config

import (
	"flag"
	"fmt"
	"net"
	"strings"
)

type Cli struct {
	HTTPAddress  string
	PromPort     int
	AWSRegion    string
	AWSEndpoint  string
	VodBucket    string
	ChannelRoles map[string]string
}

// AddrFlag registers a bind-address flag that validates its value as host:port.
func AddrFlag(fs *flag.FlagSet, dest *string, name, value, usage string) {
	*dest = value
	fs.Func(name, usage, func(s string) error {
		if _, _, err := net.SplitHostPort(s); err != nil {
			return err
		}
		*dest = s
		return nil
	})
}

// CommaMapFlag parses a comma-separated list of key=value pairs into a map.
func CommaMapFlag(fs *flag.FlagSet, dest *map[string]string, name string, value map[string]string, usage string) {
	*dest = value
	fs.Func(name, usage, func(s string) error {
		m, err := ParseCommaMap(s)
		if err != nil {
			return err
		}
		*dest = m
		return nil
	})
}

// ParseCommaMap parses "k1=v1,k2=v2" into a map. An empty string yields an
// empty map. Used both for the CLI flag and for the per-request override
// header, which carries the same format.
func ParseCommaMap(s string) (map[string]string, error) {
	m := map[string]string{}
	if s == "" {
		return m, nil
	}
	for _, pair := range strings.Split(s, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("failed to parse key-value pair %q, expected format is key=value", pair)
		}
		m[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return m, nil
}
