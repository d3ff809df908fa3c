package nets

import (
	"net"
	"net/netip"
	"strings"
)

type IsLocalAddr func(addr string) (bool, error)

func isLocalIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}

func (Module) IsLocalAddr() IsLocalAddr {
	return func(addr string) (bool, error) {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			// no port
			host = addr
		}
		host = strings.Trim(host, "[]")

		if ip, err := netip.ParseAddr(host); err == nil {
			return isLocalIP(net.IP(ip.AsSlice())), nil
		}
		if strings.EqualFold(host, "localhost") {
			return true, nil
		}

		ips, err := net.LookupIP(host)
		if err != nil {
			// unknown hosts go through the proxy
			return false, nil
		}
		for _, ip := range ips {
			if isLocalIP(ip) {
				return true, nil
			}
		}

		return false, nil
	}
}
