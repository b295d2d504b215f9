package routes

import (
	"civichub/controllers"

	"github.com/gin-gonic/gin"
)

func SignupRouteHandler(ctx *gin.Context) {
	controllers.Signup(ctx)
}

func VerifyEmailRouteHandler(ctx *gin.Context) {
	controllers.VerifyEmail(ctx)
}

func LoginRouteHandler(ctx *gin.Context) {
	controllers.Login(ctx)
}
