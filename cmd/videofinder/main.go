package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"market-scout/config"
	"market-scout/finder"
	"market-scout/finder/gemini"
	"market-scout/finder/query"
	"market-scout/finder/youtube"
	"market-scout/models"
	"market-scout/utils"
)

func main() {
	voice := flag.Bool("voice", false, "take the query from the configured audio file instead of stdin")
	flag.Parse()

	logger := utils.NewLogger()
	cfg := config.Load()
	ctx := context.Background()

	logger.Info("=== Video Finder starting ===")

	q, err := acquireQuery(ctx, cfg, logger, *voice)
	if err != nil {
		logger.Error("Failed to read query: %v", err)
		os.Exit(1)
	}

	searchClient, err := youtube.NewClient(ctx, cfg)
	if err != nil {
		logger.Error("YouTube client init failed: %v", err)
		os.Exit(1)
	}

	ranker, err := gemini.NewRanker(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error("Gemini client init failed: %v", err)
		os.Exit(1)
	}
	defer ranker.Close()

	normalizer, err := query.NewNormalizer(ctx, cfg.GoogleCloudAPIKey, logger)
	if err != nil {
		logger.Error("Translate client init failed: %v", err)
		os.Exit(1)
	}
	defer normalizer.Close()

	f := finder.New(cfg, logger, searchClient, ranker, normalizer)
	selection, err := f.Run(ctx, q)
	switch {
	case errors.Is(err, finder.ErrNoQuery):
		logger.Info("No valid query provided. Nothing to do.")
		return
	case errors.Is(err, finder.ErrNoCandidates):
		logger.Info("No videos found matching the criteria.")
		return
	case err != nil:
		logger.Error("Video search failed: %v", err)
		os.Exit(1)
	}

	printSelection(selection)
}

// acquireQuery reads the search query from stdin, or transcribes the
// configured audio file when --voice is set.
func acquireQuery(ctx context.Context, cfg *config.Config, logger *utils.Logger, voice bool) (string, error) {
	if voice {
		rec, err := query.NewRecognizer(ctx, cfg.GoogleCloudAPIKey, cfg.VoicePrimaryLang, cfg.VoiceFallbackLang, logger)
		if err != nil {
			return "", err
		}
		defer rec.Close()
		return rec.Transcribe(ctx, cfg.VoiceAudioPath), nil
	}

	fmt.Print("Enter search query: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func printSelection(sel models.Selection) {
	line := strings.Repeat("=", 50)
	fmt.Println()
	fmt.Println(line)
	fmt.Println("  BEST MATCH")
	fmt.Println(line)
	fmt.Printf("  Title:     %s\n", sel.Video.Title)
	fmt.Printf("  Channel:   %s\n", sel.Video.ChannelTitle)
	fmt.Printf("  URL:       %s\n", sel.Video.URL)
	fmt.Printf("  Published: %s\n", sel.Video.PublishedAt.Format("2006-01-02"))
	fmt.Printf("  Duration:  %ds\n", sel.Video.DurationSeconds)
	fmt.Printf("  Views:     %d\n", sel.Video.ViewCount)
	fmt.Println(line)
	fmt.Println(sel.Explanation)
	fmt.Println()
}
