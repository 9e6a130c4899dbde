package dns

import "net/netip"

// sortResolved filters and orders addrs by Strategy. Relative order
// within each family is preserved.
func sortResolved(addrs []netip.AddrPort, strategy Strategy) []netip.AddrPort {
	switch strategy {
	case Ipv4Only:
		return filterFamily(addrs, true)
	case Ipv6Only:
		return filterFamily(addrs, false)
	case Ipv4AndIpv6:
		out := make([]netip.AddrPort, len(addrs))
		copy(out, addrs)

		return out
	case Ipv6ThenIpv4:
		return append(filterFamily(addrs, false), filterFamily(addrs, true)...)
	case Ipv4ThenIpv6:
		fallthrough
	default:
		return append(filterFamily(addrs, true), filterFamily(addrs, false)...)
	}
}

func filterFamily(addrs []netip.AddrPort, v4 bool) []netip.AddrPort {
	out := make([]netip.AddrPort, 0, len(addrs))
	for _, a := range addrs {
		if a.Addr().Is4() == v4 || (a.Addr().Is4In6() && v4) {
			out = append(out, a)
		}
	}

	return out
}
