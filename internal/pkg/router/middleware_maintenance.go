package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/gomailer/internal/pkg/config"
	"github.com/shandysiswandi/gomailer/internal/pkg/goerror"
)

func middlewareMaintenance(cfg config.Config) Middleware {
	endpoints := make(map[string]struct{})
	if cfg != nil {
		for _, endpoint := range cfg.GetArray("app.maintenance.endpoints") {
			endpoint = strings.TrimSpace(endpoint)
			if endpoint == "" {
				continue
			}
			endpoints[endpoint] = struct{}{}
		}
	}

	errMaintenance := goerror.NewBusiness("Service unavailable", "service is under maintenance", goerror.CodeUnavailable)

	return func(next http.Handler) http.Handler {
		if len(endpoints) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, blocked := endpoints[routeOf(r)]; blocked {
				encodeError(r.Context(), w, errMaintenance)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
