package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"splitkit/pkg/netif"
	"splitkit/pkg/ui"
)

var ifacesFlags struct {
	noColor  bool
	ipconfig string
}

var ifacesCmd = &cobra.Command{
	Use:   "ifaces",
	Short: "Show network interfaces with addresses and gateways",
	Long: `Print a table of the host's network interfaces with their first IPv4 and
IPv6 address, default gateway and a short description. Rows are colored by
description. With --ipconfig, the table is built from saved Windows
ipconfig output instead ("-" reads standard input).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			ifaces []netif.Interface
			err    error
		)
		switch ifacesFlags.ipconfig {
		case "":
			ifaces, err = netif.List()
		case "-":
			ifaces, err = netif.ParseIPConfig(cmd.InOrStdin())
		default:
			f, openErr := os.Open(ifacesFlags.ipconfig)
			if openErr != nil {
				return fmt.Errorf("opening ipconfig output: %w", openErr)
			}
			defer f.Close()
			ifaces, err = netif.ParseIPConfig(f)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), netif.Render(ifaces, !ifacesFlags.noColor && !ui.NoColor()))
		return nil
	},
}

func init() {
	ifacesCmd.Flags().BoolVar(&ifacesFlags.noColor, "no-color", false, "disable colored rows")
	ifacesCmd.Flags().StringVar(&ifacesFlags.ipconfig, "ipconfig", "", "read saved ipconfig output from a file")
	RootCmd.AddCommand(ifacesCmd)
}
