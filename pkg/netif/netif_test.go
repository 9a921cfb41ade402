package netif

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name, ipv4, want string
	}{
		{"Wi-Fi", "192.168.1.5", WiFi},
		{"WiFi 2", NA, WiFi},
		{"wlp3s0", "10.0.0.2", WiFi},
		{"Ethernet 4", "10.0.0.3", MainLAN},
		{"Ethernet 2", NA, Disconnected},
		{"Ethernet 2", "10.0.0.9", Unknown},
		{"vEthernet (WSL)", "172.20.0.1", VMVirtual},
		{"docker0", "172.17.0.1", VMVirtual},
		{"Local Area Connection* 1", NA, Virtual},
		{"lo", "127.0.0.1", Loopback},
		{"eth0", "10.1.1.1", MainLAN},
		{"enp0s31f6", NA, Disconnected},
		{"mystery", NA, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name, tt.ipv4))
		})
	}
}

func TestParseRoutes(t *testing.T) {
	table := "Iface\tDestination\tGateway \tFlags\tRefCnt\tUse\tMetric\tMask\n" +
		"eth0\t00000000\t0101A8C0\t0003\t0\t0\t100\t00000000\n" +
		"eth0\t0001A8C0\t00000000\t0001\t0\t0\t100\t00FFFFFF\n" +
		"wlan0\t00000000\t0100000A\t0003\t0\t0\t600\t00000000\n" +
		"eth0\t00000000\t0201A8C0\t0003\t0\t0\t200\t00000000\n"

	got, err := ParseRoutes(strings.NewReader(table))
	require.NoError(t, err)
	want := map[string]string{"eth0": "192.168.1.1", "wlan0": "10.0.0.1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseRoutes mismatch (-want +got):\n%s", diff)
	}
}

func TestReadGatewaysMissingTable(t *testing.T) {
	got, err := readGateways(t.TempDir() + "/route")
	require.NoError(t, err)
	assert.Empty(t, got)
}

const ipconfigOutput = `
Windows IP Configuration


Ethernet adapter Ethernet 4:

   Connection-specific DNS Suffix  . : lan
   Link-local IPv6 Address . . . . . : fe80::1c2d:3e4f:5a6b:7c8d%12
   IPv4 Address. . . . . . . . . . . : 192.168.1.20
   Subnet Mask . . . . . . . . . . . : 255.255.255.0
   Default Gateway . . . . . . . . . : 192.168.1.1

Ethernet adapter Ethernet 2:

   Media State . . . . . . . . . . . : Media disconnected
   Connection-specific DNS Suffix  . :

Wireless LAN adapter Wi-Fi:

   IPv4 Address. . . . . . . . . . . : 10.0.0.7(Preferred)
   Default Gateway . . . . . . . . . :
`

func TestParseIPConfig(t *testing.T) {
	got, err := ParseIPConfig(strings.NewReader(ipconfigOutput))
	require.NoError(t, err)

	want := []Interface{
		{Name: "Ethernet 4", IPv4: "192.168.1.20", IPv6: "fe80::1c2d:3e4f:5a6b:7c8d", Gateway: "192.168.1.1", Description: MainLAN},
		{Name: "Ethernet 2", IPv4: NA, IPv6: NA, Gateway: NA, Description: Disconnected},
		{Name: "Wi-Fi", IPv4: "10.0.0.7", IPv6: NA, Gateway: NA, Description: WiFi},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseIPConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderPlain(t *testing.T) {
	out := Render([]Interface{
		{Name: "eth0", IPv4: "10.0.0.2", IPv6: NA, Gateway: "10.0.0.1", Description: MainLAN},
		{Name: "wlan0", IPv4: NA, IPv6: NA, Gateway: NA, Description: WiFi},
	}, false)

	assert.NotContains(t, out, "\x1b[")
	for _, want := range append(Headers, "eth0", "10.0.0.1", "wlan0", "┌", "┘", "● WiFi adapter") {
		assert.Contains(t, out, want)
	}
	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.Equal(t, Legend(false), lines[len(lines)-1])
}

func TestListIncludesLoopback(t *testing.T) {
	ifaces, err := List()
	require.NoError(t, err)
	for _, ifc := range ifaces {
		assert.NotEmpty(t, ifc.Name)
		assert.NotEmpty(t, ifc.IPv4)
		assert.NotEmpty(t, ifc.Description)
	}
}
