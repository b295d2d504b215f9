package routes

import (
	"civichub/controllers"

	"github.com/gin-gonic/gin"
)

func CreatePostRouteHandler(ctx *gin.Context) {
	controllers.CreatePost(ctx)
}

func ListPostsRouteHandler(ctx *gin.Context) {
	controllers.ListPosts(ctx)
}

func CreateCommentRouteHandler(ctx *gin.Context) {
	controllers.CreateComment(ctx)
}

func ListCommentsRouteHandler(ctx *gin.Context) {
	controllers.ListComments(ctx)
}
