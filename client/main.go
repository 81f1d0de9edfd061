package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"dearmind-backend/internal/config"
	"dearmind-backend/internal/database"
	"dearmind-backend/internal/model"
	metaRepository "dearmind-backend/internal/repository/emotionmeta"
	selfcareRepository "dearmind-backend/internal/repository/selfcare"
	topicRepository "dearmind-backend/internal/repository/topic"

	firebase "firebase.google.com/go/v4"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// referenceData is the layout of the seed file, see seed/reference.json.
type referenceData struct {
	EmotionIcons []model.EmotionIcon            `json:"emotionIcons"`
	ComboIcons   []model.EmotionComboIcon       `json:"comboIcons"`
	Quotes       []model.EmotionQuote           `json:"quotes"`
	Selfcare     map[model.EmotionType][]string `json:"selfcare"`
	Topics       []model.Topic                  `json:"topics"`
}

func main() {

	filePath := flag.String("file", "./seed/reference.json", "reference data to load")
	flag.Parse()

	cnf := config.LoadConfigOrPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := createFirebaseAppOrPanic(ctx, cnf.Firebase)
	firestoreClient := createFirestoreClientOrPanic(ctx, app, cnf.Firebase)
	defer firestoreClient.Close()

	data, err := readReferenceData(*filePath)
	if err != nil {
		panic(err)
	}

	if err := seed(ctx, data,
		metaRepository.New(firestoreClient),
		selfcareRepository.New(firestoreClient),
		topicRepository.New(firestoreClient)); err != nil {
		panic(err)
	}

	log.Info().Msgf("reference data from %s saved to Firestore", *filePath)
}

func readReferenceData(filePath string) (referenceData, error) {
	jsonFile, err := os.Open(filePath)
	if err != nil {
		return referenceData{}, fmt.Errorf("open reference data: %w", err)
	}
	defer jsonFile.Close()

	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return referenceData{}, fmt.Errorf("read reference data: %w", err)
	}

	var data referenceData
	if err := json.Unmarshal(byteValue, &data); err != nil {
		return referenceData{}, fmt.Errorf("unmarshal reference data: %w", err)
	}
	return data, nil
}

func seed(ctx context.Context, data referenceData,
	metaRepo metaRepository.IRepository,
	selfcareRepo selfcareRepository.IRepository,
	topicRepo topicRepository.IRepository) error {

	for _, icon := range data.EmotionIcons {
		if icon.Emotion != model.EmotionUnknown && !icon.Emotion.Valid() {
			return fmt.Errorf("unknown emotion %q in emotionIcons", icon.Emotion)
		}
		if err := metaRepo.PutIcon(ctx, icon); err != nil {
			return err
		}
	}
	log.Info().Msgf("saved %d emotion icons", len(data.EmotionIcons))

	for _, combo := range data.ComboIcons {
		for _, e := range combo.Emotions {
			if !e.Valid() {
				return fmt.Errorf("unknown emotion %q in comboIcons", e)
			}
		}
		combo.Emotions = model.SortEmotions(combo.Emotions)
		if err := metaRepo.PutComboIcon(ctx, combo); err != nil {
			return err
		}
	}
	log.Info().Msgf("saved %d combination icons", len(data.ComboIcons))

	if len(data.Quotes) > 0 {
		if err := metaRepo.PutQuotes(ctx, data.Quotes); err != nil {
			return err
		}
	}
	log.Info().Msgf("saved %d quotes", len(data.Quotes))

	for emotion, activities := range data.Selfcare {
		if !emotion.Valid() {
			return fmt.Errorf("unknown emotion %q in selfcare", emotion)
		}
		if err := selfcareRepo.PutActivities(ctx, emotion, activities); err != nil {
			return err
		}
	}
	log.Info().Msgf("saved self-care activities for %d emotions", len(data.Selfcare))

	if len(data.Topics) > 0 {
		if err := topicRepo.PutTopics(ctx, data.Topics); err != nil {
			return err
		}
	}
	log.Info().Msgf("saved %d topics", len(data.Topics))
	return nil
}

func createFirebaseAppOrPanic(ctx context.Context, cnf config.Firebase) *firebase.App {
	creds, err := json.Marshal(cnf)
	if err != nil {
		panic(err)
	}

	sa := option.WithCredentialsJSON(creds)
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cnf.ProjectId}, sa)
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
