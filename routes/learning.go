package routes

import (
	"civichub/controllers"

	"github.com/gin-gonic/gin"
)

func ListModulesRouteHandler(ctx *gin.Context) {
	controllers.ListModules(ctx)
}

func CompleteModuleRouteHandler(ctx *gin.Context) {
	controllers.CompleteModule(ctx)
}

func SubmitQuizAttemptRouteHandler(ctx *gin.Context) {
	controllers.SubmitQuizAttempt(ctx)
}
