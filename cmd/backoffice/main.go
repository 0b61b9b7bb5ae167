package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"github.com/organizerhq/backoffice/internal/api"
	"github.com/organizerhq/backoffice/internal/pubsub"
	sessionRepo "github.com/organizerhq/backoffice/internal/repositories/session"
	"github.com/organizerhq/backoffice/internal/services/moderation"
	"github.com/organizerhq/backoffice/internal/services/realtime"
	sessionService "github.com/organizerhq/backoffice/internal/services/session"
)

func main() {
	// Load .env when present; real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}

	baseURL := getEnv("API_BASE_URL", "")
	if baseURL == "" {
		log.Fatal("API_BASE_URL environment variable is required")
	}

	stateDir := getEnv("STATE_DIR", "")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		stateDir = filepath.Join(home, ".backoffice")
	}

	// Initialize the session store
	store, err := sessionRepo.NewFile(&sessionRepo.Config{
		Dir: stateDir,
	})
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}

	// Initialize the API client
	apiClient, err := api.New(&api.Config{
		BaseURL: baseURL,
		Store:   store,
	})
	if err != nil {
		log.Fatalf("Failed to create API client: %v", err)
	}

	// Initialize the session service
	sessionSvc, err := sessionService.New(&sessionService.Config{
		Store:     store,
		Refresher: apiClient,
		OnLogout: func() {
			log.Println("Session ended")
		},
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	ctx := context.Background()

	if err := sessionSvc.Restore(ctx); err != nil {
		log.Fatalf("Failed to restore session: %v", err)
	}

	organizer := sessionSvc.CurrentOrganizer()
	if organizer != nil {
		log.Printf("Restored session for %s", organizer.Email)
	} else {
		log.Println("No stored session, running unauthenticated")
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// One identity shared by the broker and the binder
	clientID := realtime.IdentityFor(organizer, nil)

	broker, err := pubsub.NewRedis(&pubsub.Config{
		RedisClient: redisClient,
		ClientID:    clientID,
	})
	if err != nil {
		log.Fatalf("Failed to create broker: %v", err)
	}

	binder, err := realtime.New(&realtime.Config{
		Broker:      broker,
		ClientID:    clientID,
		DisplayName: realtime.DisplayNameFor(organizer),
	})
	if err != nil {
		log.Fatalf("Failed to create realtime binder: %v", err)
	}

	// Initialize the moderation service; without an API key it runs on
	// the keyword heuristic alone
	moderationCfg := &moderation.Config{}
	if apiKey := getEnv("OPENAI_API_KEY", ""); apiKey != "" {
		moderationCfg.Completer = openai.NewClient(apiKey)
	}

	moderationSvc, err := moderation.New(moderationCfg)
	if err != nil {
		log.Fatalf("Failed to create moderation service: %v", err)
	}

	// Optionally vet a description from the environment, handy for
	// smoke-testing the validator against a live key
	if description := getEnv("VALIDATE_DESCRIPTION", ""); description != "" {
		verdict, err := moderationSvc.ValidateDescription(ctx, &moderation.ValidateDescriptionInput{
			Description: description,
		})
		if err != nil {
			log.Fatalf("Failed to validate description: %v", err)
		}

		log.Printf("Description verdict: related=%t confidence=%.2f reason=%q",
			verdict.IsEventRelated, verdict.Confidence, verdict.Reason)
	}

	// Optionally bind a group conversation and log its traffic
	if groupEnv := getEnv("GROUP_ID", ""); groupEnv != "" {
		groupID, err := strconv.ParseInt(groupEnv, 10, 64)
		if err != nil {
			log.Fatalf("Invalid GROUP_ID %q: %v", groupEnv, err)
		}

		binder.AddListener(&pubsub.Listener{
			Message: func(event *pubsub.MessageEvent) {
				log.Printf("[%s] %s: %s", event.Channel, event.Message.User.Name, event.Message.Text)
			},
			Presence: func(event *pubsub.PresenceEvent) {
				log.Printf("[%s] presence %s: %s", event.Channel, event.Action, event.ClientID)
			},
		})

		err = binder.SetCurrentChannel(ctx, &realtime.SetCurrentChannelInput{
			Channel: realtime.ChannelForGroup(groupID),
		})
		if err != nil {
			log.Fatalf("Failed to bind group %d: %v", groupID, err)
		}

		log.Printf("Bound to group %d as %s", groupID, clientID)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := binder.Teardown(ctx); err != nil {
		log.Printf("Error tearing down realtime binder: %v", err)
	}

	log.Println("Back office has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
