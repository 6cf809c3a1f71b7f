// Package middleware holds HTTP middleware that needs its own configuration:
// client IP resolution behind proxies and per-IP rate limiting.
package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"foodgram/internal/pkg/config"
)

// IPExtractor resolves the client IP of a request.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the TCP peer address. It cannot be spoofed and is
// the default when the API is not behind a trusted proxy.
type RemoteAddrExtractor struct{}

// ExtractIP strips the port from r.RemoteAddr.
func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxyConfig lists the proxies whose forwarding headers are believed.
type TrustedProxyConfig struct {
	Enabled      bool
	AllowedCIDRs []netip.Prefix
}

// IsTrusted reports whether remoteAddr ("ip:port" or "ip") is a trusted proxy.
func (c TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// LoadTrustedProxyConfig reads TRUST_PROXY and TRUSTED_PROXIES.
// TRUSTED_PROXIES is a comma-separated list of IPs or CIDR ranges and is
// required when TRUST_PROXY is true. Invalid entries fail startup.
func LoadTrustedProxyConfig() (TrustedProxyConfig, error) {
	cfg := TrustedProxyConfig{Enabled: config.GetEnvBool("TRUST_PROXY", false)}
	if !cfg.Enabled {
		return cfg, nil
	}

	entries := config.GetEnvStringList("TRUSTED_PROXIES", nil)
	if len(entries) == 0 {
		return TrustedProxyConfig{}, fmt.Errorf("TRUST_PROXY is enabled but TRUSTED_PROXIES is empty")
	}
	for _, entry := range entries {
		prefix, err := parsePrefix(entry)
		if err != nil {
			return TrustedProxyConfig{}, err
		}
		cfg.AllowedCIDRs = append(cfg.AllowedCIDRs, prefix)
	}
	return cfg, nil
}

// parsePrefix accepts "10.0.0.0/8" as well as a bare address.
func parsePrefix(s string) (netip.Prefix, error) {
	if prefix, err := netip.ParsePrefix(s); err == nil {
		return prefix, nil
	}
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid IP or CIDR %q in TRUSTED_PROXIES", s)
	}
	return netip.PrefixFrom(ip, ip.BitLen()), nil
}

// TrustedProxyExtractor reads X-Forwarded-For / X-Real-IP, but only when the
// request arrives from a trusted proxy. Otherwise it falls back to RemoteAddr.
type TrustedProxyExtractor struct {
	config TrustedProxyConfig
}

// NewTrustedProxyExtractor creates an extractor for cfg.
func NewTrustedProxyExtractor(cfg TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{config: cfg}
}

// NewIPExtractor picks the extractor matching cfg.
func NewIPExtractor(cfg TrustedProxyConfig) IPExtractor {
	if !cfg.Enabled {
		return RemoteAddrExtractor{}
	}
	return NewTrustedProxyExtractor(cfg)
}

// ExtractIP returns the forwarded client IP for trusted proxies.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.config.Enabled {
		return extractIPFromAddr(r.RemoteAddr)
	}

	if !e.config.IsTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("ignoring X-Forwarded-For from untrusted peer",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return extractIPFromAddr(r.RemoteAddr)
	}

	// X-Forwarded-For の先頭がクライアント
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String(), nil
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
			return ip.String(), nil
		}
	}
	return extractIPFromAddr(r.RemoteAddr)
}

// extractIPFromAddr handles "ip:port", "[v6]:port" and a bare IP.
func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(addr); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}
