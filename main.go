// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/sapcc/go-bits/logg"
	"github.com/sapcc/go-bits/osext"
	"github.com/spf13/cobra"

	apicmd "github.com/sapcc/occi-adapter/cmd/api"
	discovercmd "github.com/sapcc/occi-adapter/cmd/discover"

	// include all known driver implementations
	_ "github.com/sapcc/occi-adapter/internal/drivers/openstack"
	_ "github.com/sapcc/occi-adapter/internal/drivers/trivial"
)

func main() {
	logg.ShowDebug = osext.GetenvBool("OCCI_DEBUG")

	rootCmd := &cobra.Command{
		Use:   "occi-adapter",
		Short: "OCCI interface for OpenStack",
		Long:  "occi-adapter serves the Open Cloud Computing Interface (OCCI 1.1) on top of OpenStack's compute, block storage and networking services.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	discovercmd.AddCommandTo(rootCmd)

	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Server commands.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	apicmd.AddCommandTo(serverCmd)
	rootCmd.AddCommand(serverCmd)

	if err := rootCmd.Execute(); err != nil {
		logg.Fatal(err.Error())
	}
}
