package handler

import (
	"net/http"

	"github.com/vfg2006/meli-seller-api/infrastructure/integrator/meli"
	"github.com/vfg2006/meli-seller-api/internal/api/handler/router"
	"github.com/vfg2006/meli-seller-api/internal/usecases/costing"
	"github.com/vfg2006/meli-seller-api/internal/usecases/listing"
	"github.com/vfg2006/meli-seller-api/internal/usecases/profiting"
	"github.com/vfg2006/meli-seller-api/internal/usecases/syncing"
	"github.com/vfg2006/meli-seller-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Sync(service syncing.Synchronizer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync",
			Method:      http.MethodPost,
			Handler:     TriggerSync(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sync/runs",
			Method:      http.MethodGet,
			Handler:     ListSyncRuns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sync/status",
			Method:      http.MethodGet,
			Handler:     SyncStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Profit(service *profiting.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/orders/:id/breakdown",
			Method:      http.MethodGet,
			Handler:     GetOrderBreakdown(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/insights/profit",
			Method:      http.MethodGet,
			Handler:     GetProfitReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Pricing() []router.Route {
	return []router.Route{
		{
			Path:        "/v1/pricing/solve",
			Method:      http.MethodPost,
			Handler:     SolvePrice(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pricing/scenarios",
			Method:      http.MethodPost,
			Handler:     PricingScenarios(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Listings(service listing.Executor) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/listings",
			Method:      http.MethodGet,
			Handler:     ListListings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/listings/actions",
			Method:      http.MethodPost,
			Handler:     ApplyListingAction(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func FixedCosts(service costing.Manager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/fixed-costs",
			Method:      http.MethodGet,
			Handler:     ListFixedCosts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/fixed-costs",
			Method:      http.MethodPost,
			Handler:     CreateFixedCost(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/fixed-costs/:id",
			Method:      http.MethodPut,
			Handler:     UpdateFixedCost(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/fixed-costs/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteFixedCost(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func MeliConnection(integrator meli.Integrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/meli/connect",
			Method:      http.MethodPost,
			Handler:     ConnectMeli(integrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/meli/connect",
			Method:      http.MethodDelete,
			Handler:     DisconnectMeli(integrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
