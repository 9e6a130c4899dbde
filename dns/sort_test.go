package dns

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustAddrPort(t *testing.T, s string) netip.AddrPort {
	t.Helper()

	ap, err := netip.ParseAddrPort(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}

	return ap
}

func TestSortResolved(t *testing.T) {
	v4 := mustAddrPort(t, "1.2.3.4:80")
	v6 := mustAddrPort(t, "[::1]:80")
	in := []netip.AddrPort{v4, v6}

	t.Run("Ipv4Only", func(t *testing.T) {
		assert.Equal(t, []netip.AddrPort{v4}, sortResolved(in, Ipv4Only))
	})

	t.Run("Ipv6Only", func(t *testing.T) {
		assert.Equal(t, []netip.AddrPort{v6}, sortResolved(in, Ipv6Only))
	})

	t.Run("Ipv4AndIpv6 preserves order", func(t *testing.T) {
		assert.Equal(t, []netip.AddrPort{v4, v6}, sortResolved(in, Ipv4AndIpv6))
	})

	t.Run("Ipv6ThenIpv4", func(t *testing.T) {
		assert.Equal(t, []netip.AddrPort{v6, v4}, sortResolved(in, Ipv6ThenIpv4))
	})

	t.Run("Ipv4ThenIpv6", func(t *testing.T) {
		assert.Equal(t, []netip.AddrPort{v4, v6}, sortResolved(in, Ipv4ThenIpv6))
	})
}

func TestSortResolvedPreservesRelativeOrder(t *testing.T) {
	a := mustAddrPort(t, "1.1.1.1:53")
	b := mustAddrPort(t, "2.2.2.2:53")
	c := mustAddrPort(t, "[::1]:53")
	d := mustAddrPort(t, "[::2]:53")

	in := []netip.AddrPort{a, c, b, d}

	got := sortResolved(in, Ipv4ThenIpv6)
	assert.Equal(t, []netip.AddrPort{a, b, c, d}, got)
}
