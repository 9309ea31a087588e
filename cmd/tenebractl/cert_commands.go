package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tenebractl/internal/certinfo"
)

func newCertCommand(ctx *commandContext) *cobra.Command {
	certCmd := &cobra.Command{
		Use:   "cert",
		Short: "Certificate helpers",
	}

	certCmd.AddCommand(&cobra.Command{
		Use:   "name [PATH]",
		Short: "Print the certificate's common name",
		Long:  "Print the subject common name of a PEM certificate. Without PATH the cert setting is used. Unreadable certificates report localhost.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				s, _, _, err := ctx.loadSettings()
				if err != nil {
					return err
				}
				path = s.Cert
			}
			fmt.Fprintln(cmd.OutOrStdout(), certinfo.CommonName(path))
			return nil
		},
	})

	certCmd.AddCommand(&cobra.Command{
		Use:   "address",
		Short: "Print the address clients use to connect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, _, err := ctx.loadSettings()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), certinfo.ShareAddress(s.Cert, s.Port))
			return nil
		},
	})

	return certCmd
}
