package app

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jeffandersoncharriot/ByteBoard/internal/auth"
	"github.com/jeffandersoncharriot/ByteBoard/internal/comment"
	"github.com/jeffandersoncharriot/ByteBoard/internal/config"
	"github.com/jeffandersoncharriot/ByteBoard/internal/handler"
	"github.com/jeffandersoncharriot/ByteBoard/internal/job"
	"github.com/jeffandersoncharriot/ByteBoard/internal/middleware"
	"github.com/jeffandersoncharriot/ByteBoard/internal/post"
	"github.com/jeffandersoncharriot/ByteBoard/internal/user"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	userColl, err := infra.Store.Collection(ctx, cfg.UserCollection)
	if err != nil {
		return nil, nil, err
	}
	postColl, err := infra.Store.Collection(ctx, cfg.PostCollection)
	if err != nil {
		return nil, nil, err
	}
	commentColl, err := infra.Store.Collection(ctx, cfg.CommentCollection)
	if err != nil {
		return nil, nil, err
	}
	jobColl, err := infra.Store.Collection(ctx, cfg.JobCollection)
	if err != nil {
		return nil, nil, err
	}
	topicColl, err := infra.Store.Collection(ctx, cfg.TopicCollection)
	if err != nil {
		return nil, nil, err
	}

	users := user.NewStore(user.NewMongoRepository(userColl))
	posts := post.NewStore(
		post.NewMongoRepository(postColl),
		post.NewMongoTopicRepository(topicColl),
		users,
	)
	comments := comment.NewStore(comment.NewMongoRepository(commentColl), users, posts)
	jobs := job.NewStore(job.NewMongoRepository(jobColl), users)

	// Deleting a user takes their comments and posts with them.
	users.SetCascades(comments, posts)

	authorizer := auth.New(infra.Sessions, users)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CorsOrigin))

	handler.NewHomeHandler(authorizer).RegisterRoutes(router)
	handler.NewSessionHandler(authorizer, users).RegisterRoutes(router)
	handler.NewUserHandler(authorizer, users).RegisterRoutes(router)
	handler.NewPostHandler(authorizer, posts).RegisterRoutes(router)
	handler.NewCommentHandler(authorizer, comments).RegisterRoutes(router)
	handler.NewJobHandler(authorizer, jobs).RegisterRoutes(router)

	for _, route := range router.Routes() {
		log.Printf("[ROUTE] %s %s", route.Method, route.Path)
	}

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return infra.Store.Close(closeCtx)
	}, nil
}
