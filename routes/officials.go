package routes

import (
	"civichub/controllers"

	"github.com/gin-gonic/gin"
)

func ListOfficialsRouteHandler(ctx *gin.Context) {
	controllers.ListOfficials(ctx)
}

func GetOfficialRouteHandler(ctx *gin.Context) {
	controllers.GetOfficial(ctx)
}
