// Command uvcheck evaluates sun-protection advice from a terminal: a raw UV
// index, a ten-answer skin questionnaire, or a full location lookup against
// the weather provider.
//
// Usage:
//
//	go run ./cmd/uvcheck -uv 6.4
//	go run ./cmd/uvcheck -answers 2,1,2,1,2,1,2,1,2,1
//	go run ./cmd/uvcheck -location "Sydney, AU"
//
// The -location form needs OPENWEATHER_API_KEY in the environment or a .env
// file. The -uv and -answers forms are fully offline.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/chriswiesanjaya/sun-protection/internal/adapter/openweather"
	"github.com/chriswiesanjaya/sun-protection/internal/advisory"
	"github.com/chriswiesanjaya/sun-protection/internal/config"
	"github.com/chriswiesanjaya/sun-protection/internal/domain"
	"github.com/chriswiesanjaya/sun-protection/internal/observability"
)

func main() {
	location := flag.String("location", "", "free-text location to look up, e.g. \"Sydney, AU\"")
	uv := flag.String("uv", "", "raw UV index reading to classify, e.g. 6.4")
	answers := flag.String("answers", "", "ten comma-separated questionnaire answers, each 0-4")
	at := flag.String("at", "", "pin the report timestamp to an RFC3339 instant (default: now)")
	asJSON := flag.Bool("json", false, "emit JSON instead of formatted text")
	flag.Parse()

	if *location == "" && *uv == "" && *answers == "" {
		flag.Usage()
		os.Exit(1)
	}

	if *at != "" {
		pinned, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			fatalf("invalid -at value %q: %v", *at, err)
		}
		domain.SetClock(clockwork.NewFakeClockAt(pinned))
		defer domain.SetClock(nil)
	}

	if *uv != "" {
		reading, err := strconv.ParseFloat(*uv, 64)
		if err != nil {
			fatalf("invalid -uv value %q: must be a number", *uv)
		}
		adv, err := domain.ClassifyUVIndex(reading)
		if err != nil {
			fatalf("classify uv index: %v", err)
		}
		printAdvisory(adv, *asJSON)
	}

	if *answers != "" {
		vector, err := parseAnswers(*answers)
		if err != nil {
			fatalf("invalid -answers value: %v", err)
		}
		assessment, err := domain.ScoreQuestionnaire(vector)
		if err != nil {
			fatalf("score questionnaire: %v", err)
		}
		printAssessment(assessment, *asJSON)
	}

	if *location != "" {
		report, err := lookup(*location)
		if err != nil {
			fatalf("%v", err)
		}
		printReport(report, *asJSON)
	}
}

// lookup runs the full geocode → weather → UV → classify pipeline once.
func lookup(location string) (domain.Report, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return domain.Report{}, fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetrics()

	client := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.OpenWeatherTimeout, metrics, logger)
	svc := advisory.New(client, client, nil, logger, metrics)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return svc.AdviseByLocation(ctx, location)
}

// parseAnswers splits a comma-separated vector into ten answer slots.
// Empty slots stay nil so the scorer reports them as unanswered.
func parseAnswers(s string) ([]*int, error) {
	parts := strings.Split(s, ",")
	vector := make([]*int, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			vector = append(vector, nil)
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %q is not an integer", i+1, part)
		}
		vector = append(vector, &v)
	}
	return vector, nil
}

func printAdvisory(adv domain.UVAdvisory, asJSON bool) {
	if asJSON {
		printJSON(adv)
		return
	}
	fmt.Printf("UV index   %g (rounds to %d)\n", adv.UVIndex, adv.RoundedIndex)
	fmt.Printf("Risk tier  %s\n", adv.Label)
	fmt.Printf("Advice     %s\n", adv.Advice)
	fmt.Printf("Measures   %s\n", joinMeasures(adv.Measures))
}

func printAssessment(assessment domain.SkinAssessment, asJSON bool) {
	if asJSON {
		printJSON(assessment)
		return
	}
	fmt.Printf("Score      %d / %d\n", assessment.Score, domain.NumQuestions*domain.MaxAnswerValue)
	fmt.Printf("Skin type  %s (%s)\n", assessment.SkinType, assessment.Label)
	fmt.Printf("Reapply    %s\n", assessment.ReapplyAdvice)
	fmt.Printf("Reminder   every %s\n", assessment.SkinType.ReapplyInterval())
}

func printReport(report domain.Report, asJSON bool) {
	if asJSON {
		printJSON(report)
		return
	}
	fmt.Printf("Place      %s, %s (%.2f, %.2f)\n", report.Place.Name, report.Place.Country, report.Place.Lat, report.Place.Lon)
	fmt.Printf("Weather    %s, %.1f°C\n", report.Conditions.Description, report.Conditions.TemperatureC)
	fmt.Printf("Evaluated  %s\n", report.EvaluatedAt.Format(time.RFC3339))
	printAdvisory(report.Advisory, false)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("marshal output: %v", err)
	}
	fmt.Println(string(data))
}

func joinMeasures(measures []domain.Measure) string {
	names := make([]string, len(measures))
	for i, m := range measures {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "uvcheck: "+format+"\n", args...)
	os.Exit(1)
}
