// Package netinfo summarizes the host's network interfaces for on-screen
// diagnostics. The device is headless, so the errors view doubles as the place
// to read off its IP address.
package netinfo

import (
	"fmt"
	"net"
	"strings"
	"sync"
)

var summaryOnce = sync.OnceValue(func() []string {
	return summarize(net.Interfaces)
})

// Summary returns one line per interface, "name: addr [addr...]". Interface
// enumeration can be slow on constrained hardware, so the result is computed
// once per process.
func Summary() []string {
	return summaryOnce()
}

func summarize(interfaces func() ([]net.Interface, error)) []string {
	ifaces, err := interfaces()
	if err != nil {
		return []string{fmt.Sprintf("interfaces: %v", err)}
	}

	var lines []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			lines = append(lines, fmt.Sprintf("%s: %v", iface.Name, err))
			continue
		}
		var v4 []string
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok || ipNet.IP.To4() == nil {
				continue
			}
			v4 = append(v4, ipNet.IP.String())
		}
		if len(v4) == 0 {
			v4 = []string{"no IP addr"}
		}
		lines = append(lines, fmt.Sprintf("%s: %s", iface.Name, strings.Join(v4, " ")))
	}
	return lines
}
