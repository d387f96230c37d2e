// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package discovercmd

import (
	"fmt"
	"os"

	"github.com/sapcc/go-bits/logg"
	"github.com/sapcc/go-bits/must"
	"github.com/sapcc/go-bits/osext"
	"github.com/spf13/cobra"

	"github.com/sapcc/occi-adapter/internal/backend"
	"github.com/sapcc/occi-adapter/internal/processor"
	"github.com/sapcc/occi-adapter/internal/rendering"
	"github.com/sapcc/occi-adapter/internal/rendering/occijson"
	"github.com/sapcc/occi-adapter/internal/rendering/text"
	"github.com/sapcc/occi-adapter/internal/rendering/urilist"
)

var (
	outputFormat string
	baseURL      string
)

// AddCommandTo mounts this command into the command hierarchy.
func AddCommandTo(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "discover",
		Example: "  occi-adapter discover --format json --base-url https://occi.example.com",
		Short:   "Prints the query interface for the configured backend.",
		Long: `Prints the query interface for the configured backend, i.e. all static categories
plus the templates derived from the backend's flavors, images and floating IP pools.
The backend is chosen in the same way as for "occi-adapter server api".`,
		Args: cobra.NoArgs,
		Run:  run,
	}
	cmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", text.Format, "Output format: text, json or uri-list.")
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", "http://localhost:8787", "Base URL for locations in the output.")
	parent.AddCommand(cmd)
}

func run(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	gateway := must.Return(backend.NewGateway(ctx, osext.MustGetenv("OCCI_DRIVER_BACKEND")))
	c := must.Return(processor.New(gateway).Query(ctx))

	output, err := render(outputFormat, rendering.Environment{ApplicationURL: baseURL}, c)
	if err != nil {
		logg.Fatal(err.Error())
	}
	fmt.Fprintln(os.Stdout, output)
}

func render(format string, env rendering.Environment, value any) (string, error) {
	switch format {
	case text.Format:
		r, err := text.GetRenderer(value)
		if err != nil {
			return "", err
		}
		return r.Render(env), nil
	case occijson.Format:
		r, err := occijson.GetRenderer(value)
		if err != nil {
			return "", err
		}
		buf, err := r.Render(env)
		return string(buf), err
	case urilist.Format:
		r, err := urilist.GetRenderer(value)
		if err != nil {
			return "", err
		}
		return r.Render(env), nil
	default:
		return "", fmt.Errorf("unknown output format: %q", format)
	}
}
