package net

import (
	"fmt"
	"net"
	"strconv"
)

// routeAddr is dialled over UDP only to learn which interface routes out;
// no packet is sent.
const routeAddr = "8.8.8.8:80"

// LocalIP picks the address a controller on the LAN should dial. Without a
// default route it falls back to the first non-loopback IPv4 interface
// address, then to loopback.
func LocalIP() string {
	if conn, err := net.Dial("udp", routeAddr); err == nil {
		defer conn.Close()
		if udp, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			return udp.IP.String()
		}
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	if ip, ok := firstIPv4(addrs); ok {
		return ip
	}
	return "127.0.0.1"
}

func firstIPv4(addrs []net.Addr) (string, bool) {
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() || ipnet.IP.To4() == nil {
			continue
		}
		return ipnet.IP.String(), true
	}
	return "", false
}

// ShareLink is the websocket URL a controller connects to.
func ShareLink(ip string, port int) string {
	return fmt.Sprintf("ws://%s/ws", net.JoinHostPort(ip, strconv.Itoa(port)))
}
