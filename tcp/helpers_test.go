package tcp

import (
	"net/netip"
	"testing"
)

func mustAddrPort(t *testing.T, s string) netip.AddrPort {
	t.Helper()

	ap, err := netip.ParseAddrPort(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}

	return ap
}

func netipAddrPortSlice(t *testing.T, addrs ...netip.AddrPort) []netip.AddrPort {
	t.Helper()

	return addrs
}
