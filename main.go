package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dearmind-backend/internal/ai"
	"dearmind-backend/internal/cache"
	"dearmind-backend/internal/config"
	"dearmind-backend/internal/database"
	authHandler "dearmind-backend/internal/handler/auth"
	chatHandler "dearmind-backend/internal/handler/chat"
	diaryHandler "dearmind-backend/internal/handler/diary"
	emergencyHandler "dearmind-backend/internal/handler/emergency"
	metaHandler "dearmind-backend/internal/handler/emotionmeta"
	rewardHandler "dearmind-backend/internal/handler/reward"
	selfcareHandler "dearmind-backend/internal/handler/selfcare"
	"dearmind-backend/internal/identity"
	"dearmind-backend/internal/middleware"
	"dearmind-backend/internal/places"
	chatRepository "dearmind-backend/internal/repository/chat"
	diaryRepository "dearmind-backend/internal/repository/diary"
	metaRepository "dearmind-backend/internal/repository/emotionmeta"
	rewardRepository "dearmind-backend/internal/repository/reward"
	selfcareRepository "dearmind-backend/internal/repository/selfcare"
	topicRepository "dearmind-backend/internal/repository/topic"
	userRepository "dearmind-backend/internal/repository/user"
	"dearmind-backend/internal/server"
	authService "dearmind-backend/internal/service/auth"
	chatService "dearmind-backend/internal/service/chat"
	diaryService "dearmind-backend/internal/service/diary"
	emergencyService "dearmind-backend/internal/service/emergency"
	metaService "dearmind-backend/internal/service/emotionmeta"
	rewardService "dearmind-backend/internal/service/reward"
	selfcareService "dearmind-backend/internal/service/selfcare"
	"dearmind-backend/internal/storage"
	"dearmind-backend/internal/utils"

	gpt "dearmind-backend/internal/gpt"
	gptutils "dearmind-backend/internal/gpt/utils"

	firebase "firebase.google.com/go/v4"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

func main() {

	cnf := config.LoadConfigOrPanic()
	setupLogger(cnf.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	defer close(sigs)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	app := createFirebaseAppOrPanic(ctx, cnf.Firebase)
	firestoreClient := createFirestoreClientOrPanic(ctx, app, cnf.Firebase)
	defer firestoreClient.Close()

	authClient, err := app.Auth(ctx)
	if err != nil {
		panic(err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		panic(err)
	}
	bucket, err := storageClient.Bucket(cnf.StorageBucket)
	if err != nil {
		panic(err)
	}
	uploader := storage.New(bucket, cnf.StorageBucket)

	referenceCache, closeCache, err := cache.Connect(ctx, cnf.Redis.Addr, cnf.Redis.Password, cnf.Redis.DB)
	if err != nil {
		panic(err)
	}
	defer closeCache()

	outbound := &http.Client{Timeout: 15 * time.Second}
	aiClient := ai.NewClient(cnf.AIService.BaseUrl, cnf.ChatTimeout, &http.Client{})
	provider := identity.New(authClient, identity.NewToolkit(identity.DefaultToolkitURL, cnf.Firebase.ApiKey, outbound))

	assistant := createAssistantOrPanic(cnf, aiClient)

	userRepo := userRepository.New(firestoreClient)
	diaryRepo := diaryRepository.New(firestoreClient)
	chatRepo := chatRepository.New(firestoreClient)
	topicRepo := topicRepository.New(firestoreClient)
	selfcareRepo := selfcareRepository.New(firestoreClient)
	rewardRepo := rewardRepository.New(firestoreClient)
	metaRepo := metaRepository.New(firestoreClient)

	meta := metaService.New(metaRepo, diaryRepo, referenceCache, cnf.Journal.Location())
	diary := diaryService.New(diaryService.Deps{
		DiaryRepo:      diaryRepo,
		UserRepo:       userRepo,
		TopicRepo:      topicRepo,
		Uploader:       uploader,
		Analyzer:       aiClient,
		ComboIcons:     meta,
		Location:       cnf.Journal.Location(),
		RewardInterval: cnf.RewardInterval,
	})
	reward := rewardService.New(rewardService.Deps{
		RewardRepo: rewardRepo,
		UserRepo:   userRepo,
		DiaryRepo:  diaryRepo,
		Uploader:   uploader,
		Painter:    aiClient,
	})
	searcher := places.NewClient(places.Config{
		ApiKey:  cnf.GoogleMaps.ApiKey,
		Radius:  cnf.GoogleMaps.Radius,
		Keyword: cnf.GoogleMaps.Keyword,
	}, outbound, referenceCache)

	handlers := server.Handlers{
		Auth:        authHandler.New(authService.New(provider, userRepo, diaryRepo)),
		Diary:       diaryHandler.New(diary),
		Chat:        chatHandler.New(chatService.New(chatRepo, assistant)),
		Selfcare:    selfcareHandler.New(selfcareService.New(selfcareRepo)),
		Reward:      rewardHandler.New(reward),
		Emergency:   emergencyHandler.New(emergencyService.New(searcher)),
		EmotionMeta: metaHandler.New(meta),
	}

	limiter := middleware.NewRateLimiter(cnf.RateLimit.RequestsPerSecond, cnf.RateLimit.Burst)
	srv := server.New(cnf.Server, server.NewRouter(log.Logger, handlers, provider, limiter))

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info().Msgf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		select {
		case <-sigs:
			// Received a termination signal, continue to shutdown
		case <-gctx.Done():
			// the server failed, continue to shutdown
		}

		shutdownCtx, done := context.WithTimeout(context.Background(), cnf.ShutdownTimeout)
		defer done()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		cancel()
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

func setupLogger(cnf config.Log) {
	level, err := zerolog.ParseLevel(cnf.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cnf.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func createAssistantOrPanic(cnf config.Config, aiClient ai.Client) ai.Assistant {
	if cnf.ChatProvider != "gpt" {
		return aiClient
	}

	tokenizer, err := gptutils.NewTokenizer()
	if err != nil {
		panic(err)
	}

	gptFactory, err := gpt.NewClientFactory(gpt.ClientConfig{
		ApiUrl:      cnf.GPT.ApiUrl,
		ApiKey:      cnf.GPT.ApiKey,
		Model:       cnf.GPT.Model,
		Temperature: utils.Float32ToPointer(0.7),
	})
	if err != nil {
		panic(err)
	}

	return gpt.NewAssistant(gptFactory, tokenizer, cnf.HistoryTokenBudget)
}

func createFirebaseAppOrPanic(ctx context.Context, cnf config.Firebase) *firebase.App {
	creds, err := json.Marshal(cnf)
	if err != nil {
		panic(err)
	}

	sa := option.WithCredentialsJSON(creds)
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cnf.ProjectId,
		StorageBucket: cnf.StorageBucket,
	}, sa)
	if err != nil {
		panic(err)
	}
	return app
}

func createFirestoreClientOrPanic(ctx context.Context, app *firebase.App, cnf config.Firebase) database.FirestoreClient {
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		panic(err)
	}
	return database.New(firestoreClient, cnf.WriteTimeoutSecond)
}
