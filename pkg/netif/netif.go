// Package netif lists network interfaces and renders them as a table.
package netif

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"strings"
)

// NA marks a value that is not available.
const NA = "N/A"

// Descriptions assigned by Classify.
const (
	WiFi         = "WiFi adapter"
	MainLAN      = "Main LAN"
	Disconnected = "Disconnected"
	VMVirtual    = "WSL/VM Virtual"
	Virtual      = "Virtual adapter"
	Loopback     = "Loopback"
	Unknown      = "Unknown"
)

// RouteFile is the Linux kernel routing table.
const RouteFile = "/proc/net/route"

// Interface is one row of the interface table.
type Interface struct {
	Name        string
	IPv4        string
	IPv6        string
	Gateway     string
	Description string
}

// List returns the host interfaces with their first IPv4 and IPv6 address
// and default gateway.
func List() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("listing interfaces: %w", err)
	}
	gateways, err := readGateways(RouteFile)
	if err != nil {
		return nil, err
	}

	out := make([]Interface, 0, len(ifaces))
	for _, ifc := range ifaces {
		row := Interface{Name: ifc.Name, IPv4: NA, IPv6: NA, Gateway: NA}
		addrs, err := ifc.Addrs()
		if err != nil {
			return nil, fmt.Errorf("reading addresses of %s: %w", ifc.Name, err)
		}
		for _, addr := range addrs {
			ip := addressIP(addr)
			if ip == nil {
				continue
			}
			if ip.To4() != nil {
				if row.IPv4 == NA {
					row.IPv4 = ip.String()
				}
			} else if row.IPv6 == NA {
				row.IPv6 = ip.String()
			}
		}
		if gw, ok := gateways[ifc.Name]; ok {
			row.Gateway = gw
		}
		if ifc.Flags&net.FlagLoopback != 0 {
			row.Description = Loopback
		} else {
			row.Description = Classify(row.Name, row.IPv4)
		}
		out = append(out, row)
	}
	return out, nil
}

func addressIP(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.IPNet:
		return a.IP
	case *net.IPAddr:
		return a.IP
	}
	return nil
}

// Classify derives a description from an interface name and its IPv4
// address.
func Classify(name, ipv4 string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "wifi"), strings.Contains(n, "wi-fi"), strings.HasPrefix(n, "wlan"), strings.HasPrefix(n, "wlp"):
		return WiFi
	case strings.Contains(n, "ethernet 4"):
		return MainLAN
	case strings.Contains(n, "ethernet") && ipv4 == NA:
		return Disconnected
	case strings.Contains(n, "vethernet"), strings.HasPrefix(n, "veth"), strings.HasPrefix(n, "docker"),
		strings.HasPrefix(n, "br-"), strings.HasPrefix(n, "virbr"), strings.HasPrefix(n, "vmnet"):
		return VMVirtual
	case strings.Contains(n, "local area"), strings.HasPrefix(n, "tun"), strings.HasPrefix(n, "tap"):
		return Virtual
	case n == "lo", strings.Contains(n, "loopback"):
		return Loopback
	case (strings.HasPrefix(n, "eth") || strings.HasPrefix(n, "en")) && !strings.Contains(n, "ethernet"):
		if ipv4 == NA {
			return Disconnected
		}
		return MainLAN
	}
	return Unknown
}

// readGateways returns the default gateway per interface from a Linux route
// table. A missing table yields an empty map.
func readGateways(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading routes: %w", err)
	}
	defer f.Close()
	return ParseRoutes(f)
}

// ParseRoutes reads a /proc/net/route table and returns the gateway of
// each interface's default route.
func ParseRoutes(r io.Reader) (map[string]string, error) {
	gateways := make(map[string]string)
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || fields[1] != "00000000" {
			continue
		}
		if _, seen := gateways[fields[0]]; seen {
			continue
		}
		ip, err := hexIPv4(fields[2])
		if err != nil {
			continue
		}
		gateways[fields[0]] = ip
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading routes: %w", err)
	}
	return gateways, nil
}

// hexIPv4 decodes the little-endian hex form used in the route table.
func hexIPv4(s string) (string, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return "", err
	}
	if len(raw) != 4 {
		return "", fmt.Errorf("gateway %q: want 4 bytes", s)
	}
	ip := make(net.IP, 4)
	binary.BigEndian.PutUint32(ip, binary.LittleEndian.Uint32(raw))
	return ip.String(), nil
}

// ParseIPConfig reads the output of Windows ipconfig.
func ParseIPConfig(r io.Reader) ([]Interface, error) {
	var (
		out     []Interface
		current *Interface
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(strings.ToLower(line), "adapter") && strings.HasSuffix(line, ":") {
			if current != nil {
				out = append(out, *current)
			}
			name := strings.TrimSuffix(line, ":")
			if i := strings.Index(strings.ToLower(name), "adapter"); i >= 0 {
				name = name[i+len("adapter"):]
			}
			current = &Interface{Name: strings.TrimSpace(name), IPv4: NA, IPv6: NA, Gateway: NA}
			continue
		}
		if current == nil {
			continue
		}
		switch {
		case strings.HasPrefix(line, "IPv4 Address"):
			current.IPv4 = cleanAddress(valueOf(line))
		case strings.HasPrefix(line, "IPv6 Address"), strings.HasPrefix(line, "Link-local IPv6 Address"):
			if current.IPv6 == NA {
				current.IPv6 = cleanAddress(valueOf(line))
			}
		case strings.HasPrefix(line, "Default Gateway"):
			if v := valueOf(line); v != "" {
				current.Gateway = v
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ipconfig output: %w", err)
	}
	if current != nil {
		out = append(out, *current)
	}
	for i := range out {
		out[i].Description = Classify(out[i].Name, out[i].IPv4)
	}
	return out, nil
}

// valueOf returns the text after the dotted label of an ipconfig line.
func valueOf(line string) string {
	i := strings.Index(line, ": ")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(line[i+2:])
}

// cleanAddress drops the "(Preferred)" suffix and the zone index.
func cleanAddress(v string) string {
	v = strings.TrimSpace(strings.TrimSuffix(v, "(Preferred)"))
	if i := strings.Index(v, "%"); i >= 0 {
		v = v[:i]
	}
	if v == "" {
		return NA
	}
	return v
}
