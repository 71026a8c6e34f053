package util

import (
	"net"
	"strings"
)

// HostClass is the security classification of an endpoint host.
// It is used to reject endpoint overrides that point at loopback or cloud
// metadata addresses.
type HostClass int

const (
	// HostClassPublic is a publicly routable address or an ordinary DNS name.
	HostClassPublic HostClass = iota
	// HostClassLoopback is a loopback address (127.0.0.0/8, ::1) or "localhost".
	HostClassLoopback
	// HostClassPrivate is a private/internal address (RFC 1918, ULA).
	HostClassPrivate
	// HostClassLinkLocal is a link-local address (169.254.x.x, fe80::/10).
	HostClassLinkLocal
	// HostClassUnspecified is an unspecified address (0.0.0.0, ::).
	HostClassUnspecified
)

// String returns a human-readable name for the host class.
func (c HostClass) String() string {
	switch c {
	case HostClassPublic:
		return "public"
	case HostClassLoopback:
		return "loopback"
	case HostClassPrivate:
		return "private"
	case HostClassLinkLocal:
		return "link_local"
	case HostClassUnspecified:
		return "unspecified"
	default:
		return "unknown"
	}
}

// ClassifyIP returns the security classification of an IP address.
//
// Classifications:
//   - Unspecified: 0.0.0.0, ::
//   - Loopback: 127.0.0.0/8, ::1
//   - LinkLocal: 169.254.0.0/16, fe80::/10, ff02::/16 (cloud metadata SSRF risk)
//   - Private: RFC 1918 (10/8, 172.16/12, 192.168/16), fc00::/7
//   - Public: All other addresses
func ClassifyIP(ip net.IP) HostClass {
	if ip == nil || ip.IsUnspecified() {
		return HostClassUnspecified
	}
	if ip.IsLoopback() {
		return HostClassLoopback
	}
	// Blocks access to metadata services (169.254.169.254)
	if ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return HostClassLinkLocal
	}
	if ip.IsPrivate() {
		return HostClassPrivate
	}
	return HostClassPublic
}

// ClassifyHost classifies a hostname as returned by url.URL.Hostname().
// DNS names are not resolved: apart from "localhost" they are treated as public.
func ClassifyHost(hostname string) HostClass {
	if strings.EqualFold(hostname, "localhost") {
		return HostClassLoopback
	}

	// Strip brackets from IPv6 literals like [::1]
	clean := hostname
	if len(hostname) > 2 && hostname[0] == '[' && hostname[len(hostname)-1] == ']' {
		clean = hostname[1 : len(hostname)-1]
	}

	if ip := net.ParseIP(clean); ip != nil {
		return ClassifyIP(ip)
	}
	return HostClassPublic
}
