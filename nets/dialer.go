package nets

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/reusee/bfem/logs"
)

// Dialer opens the connections used to fetch remote programs.
type Dialer interface {
	Dial(network, addr string) (net.Conn, error)
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
}

const dialTimeout = 10 * time.Second

// Dialer connects to local addresses directly and to everything else through
// the configured proxy, if any.
func (Module) Dialer(
	getProxyDialer GetProxyDialer,
	isLocalAddr IsLocalAddr,
	logger logs.Logger,
) Dialer {
	direct := &net.Dialer{
		Timeout: dialTimeout,
	}
	return DialerFunc(func(ctx context.Context, network, addr string) (net.Conn, error) {
		local, err := isLocalAddr(addr)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", addr, err)
		}

		route := "direct"
		var dialer Dialer = direct
		if !local {
			route = "proxy"
			dialer, err = getProxyDialer()
			if err != nil {
				return nil, fmt.Errorf("dial %s: proxy: %w", addr, err)
			}
		}

		ctx, cancel := context.WithTimeout(ctx, dialTimeout)
		defer cancel()
		t0 := time.Now()
		conn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, fmt.Errorf("dial %s via %s: %w", addr, route, err)
		}
		logger.DebugContext(ctx, "dial",
			"addr", addr,
			"route", route,
			"duration", time.Since(t0),
		)
		return conn, nil
	})
}

type DialerFunc func(context.Context, string, string) (net.Conn, error)

var _ Dialer = DialerFunc(nil)

func (d DialerFunc) DialContext(ctx context.Context, network string, addr string) (net.Conn, error) {
	return d(ctx, network, addr)
}

func (d DialerFunc) Dial(network string, addr string) (net.Conn, error) {
	return d(context.Background(), network, addr)
}
