package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/harukimoto/anitrack/internal/catalog"
	"github.com/harukimoto/anitrack/internal/config"
	"github.com/harukimoto/anitrack/internal/db"
	"github.com/harukimoto/anitrack/internal/model"
	"github.com/harukimoto/anitrack/internal/service"
)

// recogcheck runs the labeled filename corpus from the command line and exits
// non-zero when any case fails. Useful before shipping tweaks to the
// recognition rules.
func main() {
	corpus := flag.String("corpus", "", "corpus file path (default: recognition.corpus_path from config)")
	verbose := flag.Bool("v", false, "print passing cases too")
	flag.Parse()

	if err := config.LoadConfig("."); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	db.InitDB(config.AppConfig.Database.Path)
	defer db.CloseDB()

	path := config.AppConfig.Recognition.CorpusPath
	if *corpus != "" {
		path = *corpus
	}

	token := db.GetConfigValue(model.ConfigKeyAniListToken, config.AppConfig.AniList.Token)
	client := catalog.NewClient(token, config.AppConfig.AniList.Proxy)
	resolver := service.NewResolverService(client)

	if err := resolver.RefreshCatalog(); err != nil {
		log.Fatalf("Catalog refresh failed: %v", err)
	}

	results, err := resolver.RunCorpus(path)
	if err != nil {
		log.Fatalf("Corpus run failed: %v", err)
	}
	if len(results) == 0 {
		fmt.Printf("No test cases found at %s\n", path)
		return
	}

	passed := 0
	for _, r := range results {
		if r.Passed() {
			passed++
			if *verbose {
				fmt.Printf("PASS  %-60s  id=%d ep=%d res=%d score=%.2f\n",
					r.Filename, r.AnimeID, r.Episode, r.Resolution, r.SimilarityScore)
			}
			continue
		}
		fmt.Printf("FAIL  %-60s\n", r.Filename)
		if !r.IDPass {
			fmt.Printf("      id: got %d (%s), expected %d\n", r.AnimeID, r.IDTitle, r.ExpectedAnimeID)
		}
		if !r.EpisodePass {
			fmt.Printf("      episode: got %d, expected %d\n", r.Episode, r.ExpectedEpisode)
		}
		if !r.ResolutionPass {
			fmt.Printf("      resolution: got %d, expected %d\n", r.Resolution, r.ExpectedResolution)
		}
		fmt.Printf("      score=%.2f title=%q\n", r.SimilarityScore, r.Title)
	}

	fmt.Printf("\n%d/%d passed\n", passed, len(results))
	if passed != len(results) {
		os.Exit(1)
	}
}
