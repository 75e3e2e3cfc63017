package main

import (
	"bufio"
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/verdict-ml/verdict/pkg/db"
	"github.com/verdict-ml/verdict/pkg/genetics"
	"github.com/verdict-ml/verdict/pkg/model"
	"github.com/verdict-ml/verdict/pkg/reviews"
)

func loadEnv(filenames ...string) {
	for _, filename := range filenames {
		if s, err := os.Stat(filename); err == nil && !s.IsDir() {
			godotenv.Load(filename)
		}
	}
}

func main() {
	if _, ok := os.LookupEnv("ENV"); !ok {
		env := "development"
		os.Setenv("ENV", env)
	}
	loadEnv(".env."+os.Getenv("ENV")+".local", ".env."+os.Getenv("ENV"), ".env.local", ".env")

	mongo, err := db.ConnectMongo()
	if err != nil {
		log.Printf("mongodb unavailable, runs will not be persisted: %v", err)
		mongo = nil
	}

	cachePath := "verdict-cache.db"
	if c, ok := os.LookupEnv("VERDICT_CACHE"); ok {
		cachePath = c
	}
	cache, err := leveldb.OpenFile(cachePath, nil)
	if err != nil {
		log.Fatalf("error opening cache %s: %v", cachePath, err)
	}
	defer cache.Close()

	optimize := false
	if o, ok := os.LookupEnv("VERDICT_OPTIMIZE"); ok {
		if o, err := strconv.ParseBool(o); err != nil {
			log.Fatalf("error parsing env.VERDICT_OPTIMIZE: %v", err)
		} else {
			optimize = o
		}
	}

	generations := 24
	if g, ok := os.LookupEnv("VERDICT_GENERATIONS"); ok {
		if g, err := strconv.ParseInt(g, 10, 64); err != nil {
			log.Fatalf("error parsing env.VERDICT_GENERATIONS: %v", err)
		} else {
			generations = int(g)
		}
	}

	popSize := 16
	if p, ok := os.LookupEnv("VERDICT_POPULATION_SIZE"); ok {
		if p, err := strconv.ParseInt(p, 10, 64); err != nil {
			log.Fatalf("error parsing env.VERDICT_POPULATION_SIZE: %v", err)
		} else {
			popSize = int(p)
		}
	}

	ensemble := 1
	if e, ok := os.LookupEnv("VERDICT_ENSEMBLE"); ok {
		if e, err := strconv.ParseInt(e, 10, 64); err != nil {
			log.Fatalf("error parsing env.VERDICT_ENSEMBLE: %v", err)
		} else {
			ensemble = int(e)
		}
	}

	params := model.NewModelParamsFromDefaults()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Run Config")
	t.AppendRows([]table.Row{
		{"VERDICT_CACHE", cachePath},
		{"VERDICT_OPTIMIZE", strconv.FormatBool(optimize)},
		{"VERDICT_GENERATIONS", strconv.Itoa(generations)},
		{"VERDICT_POPULATION_SIZE", strconv.Itoa(popSize)},
		{"VERDICT_ENSEMBLE", strconv.Itoa(ensemble)},
	})
	t.Render()

	params.Write(os.Stdout, "Model Config")

	if optimize {
		idx, err := reviews.GetWordIndex(cache)
		if err != nil {
			log.Fatalf("error loading word index: %v", err)
		}

		best := genetics.NaturalSelection(cache, idx, popSize, generations, 0.5, 0.3, 2)
		bestParams := genetics.StrategyToParams(best)
		bestParams.Write(os.Stdout, "Best Strategy")
		if best.ModelMetrics != nil {
			best.ModelMetrics.Write(os.Stdout)
		}
		return
	}

	pw := progress.NewWriter()
	pw.SetMessageLength(40)
	pw.SetNumTrackersExpected(6)
	pw.SetSortBy(progress.SortByPercentDsc)
	pw.SetStyle(progress.StyleDefault)
	pw.SetTrackerLength(15)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(time.Millisecond * 100)
	pw.Style().Colors = progress.StyleColorsExample
	pw.Style().Options.PercentFormat = "%2.0f%%"
	go pw.Render()

	idx, err := reviews.GetWordIndex(cache)
	if err != nil {
		log.Fatalf("error loading word index: %v", err)
	}

	started := time.Now()

	var classify func(text string) (model.Sentiment, float64, error)
	var metrics model.ModelMetrics

	if ensemble > 1 {
		m, err := model.NewEnsembleModel(context.Background(), pw, cache, idx, params, ensemble)
		if err != nil {
			log.Fatalf("error instantiating ensemble model: %v", err)
		}
		classify = m.Classify
		metrics = m.Metrics()
	} else {
		m, err := model.NewModel(context.Background(), pw, cache, idx, params)
		if err != nil {
			log.Fatalf("error instantiating model: %v", err)
		}
		classify = m.Classify
		metrics = m.Metrics
	}

	pw.Stop()
	for pw.IsRenderInProgress() {
		time.Sleep(100 * time.Millisecond)
	}

	if err := metrics.Write(os.Stdout); err != nil {
		log.Fatalf("error writing metrics: %v", err)
	}

	if mongo != nil {
		run := db.Run{
			StartedAt:  started,
			FinishedAt: time.Now(),
			Params:     params,
			Metrics:    metrics,
		}
		if err := db.SaveRun(mongo, context.Background(), run); err != nil {
			log.Printf("error saving run: %v", err)
		}
	}

	log.Printf("enter review text to classify, one per line")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if sentiment, prob, err := classify(text); err != nil {
			log.Println(err)
		} else {
			log.Printf("sentiment: %s (%0.02f%%)", sentiment, prob*100)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("error reading stdin: %v", err)
	}
}
