package logger

import (
	"encoding/json"
	"log"
	"os"
)

func Init() {
	log.SetOutput(os.Stdout)
	log.SetFlags(0)
	log.Printf(`{"level":"INFO","msg":"logger initialized"}`)
}

func Info(msg string, fields map[string]any) {
	write("INFO", msg, fields)
}

func Error(msg string, fields map[string]any) {
	write("ERROR", msg, fields)
}

func Fatal(msg string, fields map[string]any) {
	write("FATAL", msg, fields)
	os.Exit(1)
}

func write(level, msg string, fields map[string]any) {
	if fields == nil {
		log.Printf(`{"level":"%s","msg":"%s"}`, level, msg)
		return
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		encoded = []byte(`{}`)
	}
	log.Printf(`{"level":"%s","msg":"%s","fields":%s}`, level, msg, encoded)
}
