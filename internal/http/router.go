package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/uwcirg/waverify-auth/internal/http/handlers"
	"github.com/uwcirg/waverify-auth/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, mw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/demographics", ah.SubmitDemographics)
	auth.GET("/redeem", ah.RedeemToken)
	auth.POST("/pin", ah.VerifyPin)
	auth.POST("/pin/setup", ah.SetupPin)

	v := r.Group("/").Use(mw.WithSession())
	v.GET("/auth/session", ah.Session)

	return r
}
