package pkg

import (
	"fmt"

	"autoservice/internal/app/config"
	"autoservice/internal/app/handler"
	"autoservice/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Handler *handler.Handler
	Auth    *middleware.AuthMiddleware
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.Handler, a *middleware.AuthMiddleware) *Application {
	return &Application{
		Config:  c,
		Router:  r,
		Handler: h,
		Auth:    a,
	}
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	a.Handler.RegisterRoutes(a.Router, a.Auth)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}
