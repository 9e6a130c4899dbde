// Package dns implements the name resolution subsystem: strategy-filtered
// host lookup with three resolver variants (Default, System, Custom), a
// bounded-time OS lookup path, and an answer cache/rate-limited exchange
// path for the stub resolver variants.
package dns

import "time"

// Strategy filters and orders resolved addresses by IP family.
type Strategy int

// Strategy values.
const (
	Ipv4ThenIpv6 Strategy = iota
	Ipv4Only
	Ipv6Only
	Ipv4AndIpv6
	Ipv6ThenIpv4
)

// Protocol is the wire protocol used to reach a configured name server.
type Protocol int

// Protocol values.
const (
	ProtoTCP Protocol = iota
	ProtoUDP
)

// NameServerOption names one upstream resolver to use for the Custom
// resolver variant.
type NameServerOption struct {
	Protocol Protocol `yaml:"protocol"`
	Address  string   `yaml:"address"`
}

// ResolveOption configures a [Resolver].
type ResolveOption struct {
	Strategy Strategy           `yaml:"strategy"`
	Timeout  time.Duration      `yaml:"timeout"`
	Servers  []NameServerOption `yaml:"servers"`
}

// DefaultResolveOption returns the documented defaults:
// strategy=Ipv4ThenIpv6, timeout=5s, servers=[].
func DefaultResolveOption() ResolveOption {
	return ResolveOption{
		Strategy: Ipv4ThenIpv6,
		Timeout:  5 * time.Second,
	}
}
