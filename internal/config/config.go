package config

import (
	"os"
)

type Config struct {
	AppPort    string
	CorsOrigin string

	MongoURI string
	DBName   string

	RedisAddr     string
	RedisPassword string

	UserCollection    string
	PostCollection    string
	CommentCollection string
	JobCollection     string
	TopicCollection   string
}

func Load() Config {

	cfg := Config{

		AppPort:    getenv("APP_PORT", "1339"),
		CorsOrigin: getenv("CORS_ORIGIN", "http://localhost:5173"),

		MongoURI: os.Getenv("MONGODB_URI"),
		DBName:   getenv("DB_NAME", "byteboard"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		UserCollection:    getenv("USER_COLLECTION", "users"),
		PostCollection:    getenv("POST_COLLECTION", "posts"),
		CommentCollection: getenv("POST_COMMENT_COLLECTION", "comments"),
		JobCollection:     getenv("JOB_COLLECTION", "jobs"),
		TopicCollection:   getenv("TOPIC_COLLECTION", "topics"),
	}

	return cfg

}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
