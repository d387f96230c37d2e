// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package apicmd

import (
	"net/http"
	"os"
	"time"

	. "github.com/majewsky/gg/option"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sapcc/go-bits/httpapi"
	"github.com/sapcc/go-bits/httpext"
	"github.com/sapcc/go-bits/logg"
	"github.com/sapcc/go-bits/must"
	"github.com/sapcc/go-bits/osext"
	"github.com/spf13/cobra"

	occiv11 "github.com/sapcc/occi-adapter/internal/api/occi"
	"github.com/sapcc/occi-adapter/internal/backend"
	"github.com/sapcc/occi-adapter/internal/processor"
)

// AddCommandTo mounts this command into the command hierarchy.
func AddCommandTo(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Run the OCCI API server.",
		Long: `Run the OCCI API server. Configuration is read from environment variables:
OCCI_DRIVER_BACKEND (required), OCCI_API_LISTEN_ADDRESS, OCCI_API_PUBLIC_URL,
OCCI_GUI_URL and OCCI_DEBUG. The openstack backend also reads the usual OS_* variables.`,
		Args: cobra.NoArgs,
		Run:  run,
	}
	parent.AddCommand(cmd)
}

func run(cmd *cobra.Command, args []string) {
	_ = args

	ctx := httpext.ContextWithSIGINT(cmd.Context(), 10*time.Second)
	gateway := must.Return(backend.NewGateway(ctx, osext.MustGetenv("OCCI_DRIVER_BACKEND")))

	publicURL := None[string]()
	if value := os.Getenv("OCCI_API_PUBLIC_URL"); value != "" {
		publicURL = Some(value)
	}

	// wire up HTTP handlers
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type", "User-Agent", "X-Auth-Token"},
		ExposedHeaders: []string{"Category", "Link", "X-OCCI-Attribute", "X-OCCI-Location", "X-OCCI-Error"},
	})
	handler := httpapi.Compose(
		occiv11.NewAPI(processor.New(gateway), publicURL),
		&headerReflector{logg.ShowDebug}, // only enabled where debugging is enabled (i.e. usually in dev/QA only)
		httpapi.HealthCheckAPI{SkipRequestLog: true},
		httpapi.WithGlobalMiddleware(corsMiddleware.Handler),
		&rootRedirecter{os.Getenv("OCCI_GUI_URL")},
	)
	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	// start HTTP server
	apiListenAddress := osext.GetenvOrDefault("OCCI_API_LISTEN_ADDRESS", ":8787")
	logg.Info("listening on %s", apiListenAddress)
	must.Succeed(httpext.ListenAndServeContext(ctx, apiListenAddress, mux))
}
