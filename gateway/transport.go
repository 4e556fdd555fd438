package gateway

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	proxy "github.com/cloudfoundry/socks5-proxy"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/rs/zerolog/log"
)

// NewTransport builds the HTTP transport for backend calls. allProxy may be
// empty (direct), an http(s):// or socks5:// proxy URL, or an SSH tunnelled
// proxy of the form ssh+socks5://user@host:port?private-key=/path/to/key.
func NewTransport(allProxy string) (*http.Transport, error) {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if allProxy == "" {
		return t, nil
	}

	if strings.HasPrefix(allProxy, "ssh+") {
		dial, err := sshSocks5DialContext(strings.TrimPrefix(allProxy, "ssh+"))
		if err != nil {
			return nil, err
		}
		t.Proxy = nil
		t.DialContext = dial
		return t, nil
	}

	proxyURL, err := url.Parse(allProxy)
	if err != nil {
		return nil, fmt.Errorf("%w: ALL_PROXY: %w", errors.ErrConfig, err)
	}
	switch proxyURL.Scheme {
	case "http", "https", "socks5", "socks5h":
		t.Proxy = http.ProxyURL(proxyURL)
	default:
		return nil, fmt.Errorf("%w: unsupported ALL_PROXY scheme %q", errors.ErrConfig, proxyURL.Scheme)
	}
	return t, nil
}

func sshSocks5DialContext(allProxy string) (func(ctx context.Context, network, address string) (net.Conn, error), error) {
	proxyURL, err := url.Parse(allProxy)
	if err != nil {
		return nil, fmt.Errorf("%w: ALL_PROXY: %w", errors.ErrConfig, err)
	}
	if proxyURL.Scheme != "socks5" {
		return nil, fmt.Errorf("%w: unsupported ALL_PROXY scheme ssh+%s", errors.ErrConfig, proxyURL.Scheme)
	}

	keyPath := proxyURL.Query().Get("private-key")
	if keyPath == "" {
		return nil, fmt.Errorf("%w: ALL_PROXY missing required 'private-key' query param", errors.ErrConfig)
	}
	if strings.Contains(keyPath, "..") {
		return nil, fmt.Errorf("%w: ALL_PROXY private-key path must not contain '..'", errors.ErrConfig)
	}
	key, err := os.ReadFile(filepath.Clean(keyPath))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read SSH private key: %w", errors.ErrConfig, err)
	}

	username := ""
	if proxyURL.User != nil {
		username = proxyURL.User.Username()
	}

	socks5Proxy := proxy.NewSocks5Proxy(proxy.NewHostKey(), stdlog.New(log.Logger, "", 0), 1*time.Minute)

	var (
		dialer proxy.DialFunc
		mut    sync.RWMutex
	)

	// The tunnel is opened on first use and shared by every later dial.
	return func(ctx context.Context, network, address string) (net.Conn, error) {
		mut.RLock()
		d := dialer
		mut.RUnlock()
		if d != nil {
			return d(network, address)
		}

		mut.Lock()
		defer mut.Unlock()
		if dialer == nil {
			proxyDialer, err := socks5Proxy.Dialer(username, string(key), proxyURL.Host)
			if err != nil {
				return nil, fmt.Errorf("%w: error creating SOCKS5 dialer: %w", errors.ErrTransport, err)
			}
			dialer = proxyDialer
		}
		return dialer(network, address)
	}, nil
}
