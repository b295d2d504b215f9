package routes

import (
	"civichub/controllers"

	"github.com/gin-gonic/gin"
)

func CreateOfficialRouteHandler(ctx *gin.Context) {
	controllers.CreateOfficial(ctx)
}

func UpdateOfficialRouteHandler(ctx *gin.Context) {
	controllers.UpdateOfficial(ctx)
}

func ModerateRatingRouteHandler(ctx *gin.Context) {
	controllers.ModerateRating(ctx)
}

func ListPendingRatingsRouteHandler(ctx *gin.Context) {
	controllers.ListPendingRatings(ctx)
}

func CreateBadgeRouteHandler(ctx *gin.Context) {
	controllers.CreateBadge(ctx)
}

func CreateModuleRouteHandler(ctx *gin.Context) {
	controllers.CreateModule(ctx)
}
