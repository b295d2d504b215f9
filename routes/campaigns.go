package routes

import (
	"civichub/controllers"

	"github.com/gin-gonic/gin"
)

func CreateCampaignRouteHandler(ctx *gin.Context) {
	controllers.CreateCampaign(ctx)
}

func ListCampaignsRouteHandler(ctx *gin.Context) {
	controllers.ListCampaigns(ctx)
}

func SupportCampaignRouteHandler(ctx *gin.Context) {
	controllers.SupportCampaign(ctx)
}
