package dns

import (
	"context"
	"net"
	"net/netip"
	"strconv"
	"time"

	"github.com/AdguardTeam/golibs/log"
	"github.com/AdguardTeam/golibs/netutil"
	rate "github.com/beefsack/go-rate"
	"github.com/bluele/gcache"
	"github.com/miekg/dns"
	"golang.org/x/net/idna"
)

// kind tags which of the three Resolver variants is active.
type kind int

const (
	kindDefault kind = iota
	kindSystem
	kindCustom
)

// cacheTTLPositive and cacheTTLNegative bound how long the System/Custom
// exchange cache keeps an answer, per the resolver cache note.
const (
	cacheTTLPositive = 30 * time.Second
	cacheTTLNegative = 5 * time.Second
	cacheSize        = 4096
	exchangeRateHz   = 50
)

// Resolver is the host-to-address subsystem. It has three variants —
// Default, System, and Custom — that differ only in where address data
// comes from. A Resolver is immutable after construction and safe for
// concurrent use from any goroutine.
type Resolver struct {
	kind     kind
	strategy Strategy
	timeout  time.Duration
	servers  []NameServerOption
	cache    gcache.Cache
	limiters map[string]*rate.RateLimiter
}

// NewResolver builds a Resolver from opt. If opt.Servers is empty it
// attempts to read the OS resolver configuration and build a System
// resolver; on failure it falls back to a Default resolver carrying just
// timeout/strategy. If opt.Servers is non-empty it builds a Custom
// resolver. NewResolver never fails.
func NewResolver(opt ResolveOption) *Resolver {
	r := &Resolver{
		strategy: opt.Strategy,
		timeout:  opt.Timeout,
	}

	if len(opt.Servers) > 0 {
		r.kind = kindCustom
		r.servers = opt.Servers
		r.cache = newCache()
		r.limiters = newLimiters(opt.Servers)

		return r
	}

	servers, err := systemNameServers()
	if err != nil || len(servers) == 0 {
		log.Debug("dns: no usable system resolver config, falling back to default: %v", err)
		r.kind = kindDefault

		return r
	}

	r.kind = kindSystem
	r.servers = servers
	r.cache = newCache()
	r.limiters = newLimiters(servers)

	return r
}

func newCache() gcache.Cache {
	return gcache.New(cacheSize).LRU().Build()
}

func newLimiters(servers []NameServerOption) map[string]*rate.RateLimiter {
	limiters := make(map[string]*rate.RateLimiter, len(servers))
	for _, s := range servers {
		limiters[s.Address] = rate.New(exchangeRateHz, time.Second)
	}

	return limiters
}

// systemNameServers reads /etc/resolv.conf via miekg/dns's own client
// config loader. Returning an error (or an empty slice) signals the
// caller to fall back to the Default variant.
func systemNameServers() ([]NameServerOption, error) {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return nil, err
	}

	out := make([]NameServerOption, 0, len(conf.Servers))
	for _, s := range conf.Servers {
		out = append(out, NameServerOption{
			Protocol: ProtoUDP,
			Address:  net.JoinHostPort(s, conf.Port),
		})
	}

	return out, nil
}

// Resolve resolves host to a list of addresses at the given port. It
// fails with a [ResolveError] carrying one of ErrEmptyResolved, ErrIO,
// ErrResolve, ErrTimeout, or ErrInitialize.
func (r *Resolver) Resolve(ctx context.Context, host string, port uint16) ([]netip.AddrPort, error) {
	normalized, err := normalizeHost(host)
	if err != nil {
		return nil, newResolveError(ErrInitialize, "normalize host", err)
	}

	switch r.kind {
	case kindDefault:
		return r.resolveDefault(ctx, normalized, port)
	default:
		return r.resolveStub(ctx, normalized, port)
	}
}

// normalizeHost punycode-normalizes a Unicode hostname. IP literals pass
// through idna unchanged.
func normalizeHost(host string) (string, error) {
	if _, err := netip.ParseAddr(host); err == nil {
		return host, nil
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", err
	}

	return ascii, nil
}

// resolveDefault performs an OS host lookup bounded by r.timeout, then
// applies sortResolved — the only variant that sorts.
func (r *Resolver) resolveDefault(ctx context.Context, host string, port uint16) ([]netip.AddrPort, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ips, err := net.DefaultResolver.LookupIP(ctx, "ip", host)
	if err != nil {
		if ctx.Err() != nil {
			return nil, newResolveError(ErrTimeout, "default lookup timed out", err)
		}

		return nil, newResolveError(ErrResolve, "default lookup", err)
	}

	addrs := make([]netip.AddrPort, 0, len(ips))
	for _, ip := range ips {
		a, ok := netip.AddrFromSlice(ip)
		if !ok {
			continue
		}

		addrs = append(addrs, netip.AddrPortFrom(a.Unmap(), port))
	}

	addrs = sortResolved(addrs, r.strategy)
	if len(addrs) == 0 {
		return nil, newResolveError(ErrEmptyResolved, "host "+host, nil)
	}

	return addrs, nil
}

// resolveStub runs the exchange against the configured server set
// (System or Custom). The strategy is expected to have already been
// honored by the upstream answer; the result here is not re-sorted.
func (r *Resolver) resolveStub(ctx context.Context, host string, port uint16) ([]netip.AddrPort, error) {
	if cached, err := r.cache.Get(cacheKey(host, port, r.strategy)); err == nil {
		return cached.([]netip.AddrPort), nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var addrs []netip.AddrPort

	qTypes := queryTypesFor(r.strategy)
	for _, qt := range qTypes {
		ips, err := r.exchange(ctx, host, qt)
		if err != nil {
			return nil, err
		}

		for _, ip := range ips {
			addrs = append(addrs, netip.AddrPortFrom(ip, port))
		}
	}

	ttl := cacheTTLPositive
	if len(addrs) == 0 {
		ttl = cacheTTLNegative
	}

	_ = r.cache.SetWithExpire(cacheKey(host, port, r.strategy), addrs, ttl)

	if len(addrs) == 0 {
		return nil, newResolveError(ErrEmptyResolved, "host "+host, nil)
	}

	return addrs, nil
}

func cacheKey(host string, port uint16, strategy Strategy) string {
	return strconv.Itoa(int(strategy)) + "|" + host + "|" + strconv.Itoa(int(port))
}

// queryTypesFor returns the DNS RR types to query for a strategy. Both
// families are queried for the combined strategies; the caller decides
// ordering, but since the stub path is not re-sorted, query order is the
// visible order for Ipv4ThenIpv6/Ipv6ThenIpv4.
func queryTypesFor(strategy Strategy) []uint16 {
	switch strategy {
	case Ipv4Only:
		return []uint16{dns.TypeA}
	case Ipv6Only:
		return []uint16{dns.TypeAAAA}
	case Ipv6ThenIpv4:
		return []uint16{dns.TypeAAAA, dns.TypeA}
	default:
		return []uint16{dns.TypeA, dns.TypeAAAA}
	}
}

// exchange queries every configured server in order until one answers,
// rate-limited per server.
func (r *Resolver) exchange(ctx context.Context, host string, qtype uint16) ([]netip.Addr, error) {
	var lastErr error

	for _, srv := range r.servers {
		if limiter, ok := r.limiters[srv.Address]; ok {
			waitForToken(ctx, limiter)
		}

		ips, err := exchangeOne(ctx, srv, host, qtype)
		if err != nil {
			lastErr = err

			continue
		}

		return ips, nil
	}

	if lastErr == nil {
		return nil, nil
	}

	return nil, newResolveError(ErrIO, "exchange", lastErr)
}

// waitForToken blocks, re-checking the limiter, until a token is free or
// ctx is done.
func waitForToken(ctx context.Context, limiter *rate.RateLimiter) {
	for {
		if ok, _ := limiter.Try(); ok {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func exchangeOne(ctx context.Context, srv NameServerOption, host string, qtype uint16) ([]netip.Addr, error) {
	c := new(dns.Client)
	if srv.Protocol == ProtoTCP {
		c.Net = "tcp"
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), qtype)

	resp, _, err := c.ExchangeContext(ctx, m, srv.Address)
	if err != nil {
		return nil, err
	}

	out := make([]netip.Addr, 0, len(resp.Answer))
	for _, rr := range resp.Answer {
		ip := rrIP(rr)
		if ip == nil {
			continue
		}

		if netutil.ValidateIP(ip) != nil {
			continue
		}

		a, ok := netip.AddrFromSlice(ip)
		if !ok {
			continue
		}

		out = append(out, a.Unmap())
	}

	return out, nil
}

// rrIP extracts an IP from an A or AAAA resource record, adapted from
// the bogus-NXDOMAIN filter's defensive IPFromRR-then-validate idiom.
func rrIP(rr dns.RR) net.IP {
	switch v := rr.(type) {
	case *dns.A:
		return v.A
	case *dns.AAAA:
		return v.AAAA
	default:
		return nil
	}
}
