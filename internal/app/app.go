package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uwcirg/waverify-auth/internal/config"
	httpx "github.com/uwcirg/waverify-auth/internal/http"
	"github.com/uwcirg/waverify-auth/internal/http/handlers"
	"github.com/uwcirg/waverify-auth/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(container.FlowSvc, container.SessionSvc, container.UserRepo)
	sessionMW := middleware.NewAuthMW(container.SessionSvc)

	r := httpx.BuildRouter(authH, sessionMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
