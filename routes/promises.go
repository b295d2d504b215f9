package routes

import (
	"civichub/controllers"

	"github.com/gin-gonic/gin"
)

func CreatePromiseRouteHandler(ctx *gin.Context) {
	controllers.CreatePromise(ctx)
}

func ListOfficialPromisesRouteHandler(ctx *gin.Context) {
	controllers.ListOfficialPromises(ctx)
}

func SubmitEvidenceRouteHandler(ctx *gin.Context) {
	controllers.SubmitEvidence(ctx)
}

func ListPromiseEvidenceRouteHandler(ctx *gin.Context) {
	controllers.ListPromiseEvidence(ctx)
}
