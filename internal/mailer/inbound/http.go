package inbound

import (
	"github.com/shandysiswandi/gomailer/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/", end.Status)
	r.POST("/send-email", end.SendEmail)
}
