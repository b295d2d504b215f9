package routes

import (
	"civichub/controllers"

	"github.com/gin-gonic/gin"
)

func CreateRatingRouteHandler(ctx *gin.Context) {
	controllers.CreateRating(ctx)
}

func UpdateRatingRouteHandler(ctx *gin.Context) {
	controllers.UpdateRating(ctx)
}

func DeleteRatingRouteHandler(ctx *gin.Context) {
	controllers.DeleteRating(ctx)
}

func ListOfficialRatingsRouteHandler(ctx *gin.Context) {
	controllers.ListOfficialRatings(ctx)
}

func UpvoteRatingRouteHandler(ctx *gin.Context) {
	controllers.UpvoteRating(ctx)
}
