package routes

import (
	"civichub/controllers"

	"github.com/gin-gonic/gin"
)

func GetMyGameStateRouteHandler(ctx *gin.Context) {
	controllers.GetMyGameState(ctx)
}

func GetStreakRisksRouteHandler(ctx *gin.Context) {
	controllers.GetStreakRisks(ctx)
}

func ListBadgesRouteHandler(ctx *gin.Context) {
	controllers.ListBadges(ctx)
}

func GetLeaderboardRouteHandler(ctx *gin.Context) {
	controllers.GetLeaderboard(ctx)
}
