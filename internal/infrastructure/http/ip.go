package http

import (
	"fmt"
	"net"
	"strings"

	"github.com/labstack/echo/v4"
)

// NewIPExtractor decides where c.RealIP() reads the client address from.
// With no trusted proxies only the socket peer counts and forwarding headers
// are ignored. Otherwise X-Forwarded-For is walked from the nearest hop and
// the first address outside the trusted ranges is used; echo's implicit trust
// of loopback and private ranges is switched off.
func NewIPExtractor(trustedProxies []string) (echo.IPExtractor, error) {
	var ranges []*net.IPNet
	for _, entry := range trustedProxies {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		ipNet, err := parseTrustedProxy(entry)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, ipNet)
	}
	if len(ranges) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, r := range ranges {
		opts = append(opts, echo.TrustIPRange(r))
	}
	return echo.ExtractIPFromXFFHeader(opts...), nil
}

func parseTrustedProxy(entry string) (*net.IPNet, error) {
	if strings.Contains(entry, "/") {
		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
		}
		return ipNet, nil
	}
	ip := net.ParseIP(entry)
	if ip == nil {
		return nil, fmt.Errorf("trusted proxy %q: not an IP address or CIDR", entry)
	}
	bits := 128
	if v4 := ip.To4(); v4 != nil {
		ip, bits = v4, 32
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}
