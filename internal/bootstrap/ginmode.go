package bootstrap

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/haleem-akmal/portfolio/config"
)

func SetGinMode(app *config.AppConfig) {
	switch {
	case app.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case strings.EqualFold(app.Environment, "test"):
		gin.SetMode(gin.TestMode)
	}
}
