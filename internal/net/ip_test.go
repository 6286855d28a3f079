package net

import (
	"net"
	"testing"
)

func TestFirstIPv4SkipsLoopbackAndIPv6(t *testing.T) {
	addrs := []net.Addr{
		&net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)},
		&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
		&net.IPAddr{IP: net.ParseIP("10.0.0.9")},
		&net.IPNet{IP: net.ParseIP("192.168.1.20"), Mask: net.CIDRMask(24, 32)},
	}
	ip, ok := firstIPv4(addrs)
	if !ok || ip != "192.168.1.20" {
		t.Fatalf("expected 192.168.1.20, got %q (ok=%v)", ip, ok)
	}
	if _, ok := firstIPv4(addrs[:2]); ok {
		t.Fatalf("expected no match for loopback and IPv6 only")
	}
}

func TestShareLink(t *testing.T) {
	tests := []struct {
		ip   string
		port int
		want string
	}{
		{ip: "192.168.1.20", port: 8888, want: "ws://192.168.1.20:8888/ws"},
		{ip: "fe80::1", port: 80, want: "ws://[fe80::1]:80/ws"},
	}
	for _, tc := range tests {
		if got := ShareLink(tc.ip, tc.port); got != tc.want {
			t.Fatalf("ShareLink(%q, %d) = %q, want %q", tc.ip, tc.port, got, tc.want)
		}
	}
}
