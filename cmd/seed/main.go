// Command seed provisions a fresh database: the default topics and an
// administrator account. Safe to run repeatedly, existing records are
// left alone.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jeffandersoncharriot/ByteBoard/internal/config"
	"github.com/jeffandersoncharriot/ByteBoard/internal/logger"
	"github.com/jeffandersoncharriot/ByteBoard/internal/post"
	"github.com/jeffandersoncharriot/ByteBoard/internal/store"
	"github.com/jeffandersoncharriot/ByteBoard/internal/user"
)

var defaultTopics = []string{"General", "Help", "Discussion", post.JobTopicName}

func main() {
	logger.Init()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.Open(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		logger.Fatal("failed to connect to the database", map[string]any{
			"error": err.Error(),
		})
	}
	defer st.Close(ctx)

	// SEED_RESET=1 drops every collection first, for dev setups only.
	if os.Getenv("SEED_RESET") == "1" {
		for _, name := range []string{
			cfg.UserCollection, cfg.PostCollection, cfg.CommentCollection,
			cfg.JobCollection, cfg.TopicCollection,
		} {
			if err := st.Reset(ctx, name); err != nil {
				logger.Fatal("failed to reset a collection", map[string]any{
					"collection": name,
					"error":      err.Error(),
				})
			}
			logger.Info("collection reset", map[string]any{"collection": name})
		}
	}

	topicColl, err := st.Collection(ctx, cfg.TopicCollection)
	if err != nil {
		logger.Fatal("failed to open the topic collection", map[string]any{
			"error": err.Error(),
		})
	}
	topics := post.NewMongoTopicRepository(topicColl)

	for _, name := range defaultTopics {
		existing, err := topics.FindByName(ctx, name)
		if err != nil {
			logger.Fatal("failed to look up a topic", map[string]any{
				"topic": name,
				"error": err.Error(),
			})
		}
		if existing != nil {
			continue
		}
		if _, err := topics.Insert(ctx, &post.Topic{TopicName: name}); err != nil {
			logger.Fatal("failed to create a topic", map[string]any{
				"topic": name,
				"error": err.Error(),
			})
		}
		logger.Info("topic created", map[string]any{"topic": name})
	}

	userColl, err := st.Collection(ctx, cfg.UserCollection)
	if err != nil {
		logger.Fatal("failed to open the user collection", map[string]any{
			"error": err.Error(),
		})
	}
	users := user.NewStore(user.NewMongoRepository(userColl))

	adminUsername := envOr("ADMIN_USERNAME", "admin")
	adminEmail := envOr("ADMIN_EMAIL", "admin@byteboard.dev")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		logger.Fatal("ADMIN_PASSWORD must be set", nil)
	}

	existing, err := users.GetByUsername(ctx, adminUsername)
	if err == nil && existing != nil {
		logger.Info("admin account already exists", map[string]any{
			"username": adminUsername,
		})
		return
	}

	created, err := users.Register(ctx, adminUsername, adminEmail, adminPassword)
	if err != nil {
		logger.Fatal("failed to register the admin account", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := users.Update(ctx, created.Username, map[string]any{
		"admin":    true,
		"verified": true,
	}, false); err != nil {
		logger.Fatal("failed to promote the admin account", map[string]any{
			"error": err.Error(),
		})
	}

	logger.Info("admin account created", map[string]any{
		"username": adminUsername,
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
