package main

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mflix/mongodb"
	"mflix/movie"
	"mflix/pkg/config"
)

const (
	defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"
	defaultBatchSize    = 500
	noGenres            = "(no genres listed)"
)

// MovieLens titles carry the release year as a trailing "(1995)".
var titleYearPattern = regexp.MustCompile(`^(.*?)\s*\((\d{4})\)\s*$`)

func main() {
	var (
		csvPath   string
		zipURL    string
		limit     int
		batchSize int
	)

	flag.StringVar(&csvPath, "csv", "", "Path to movies.csv (skip download)")
	flag.StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.IntVar(&batchSize, "batch", defaultBatchSize, "Movies inserted per batch")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := mongodb.NewConnection(ctx, mongodb.Options{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.MongoTimeout(),
	})
	if err != nil {
		slog.Error("cannot open mongodb connection", "error", err)
		os.Exit(1)
	}
	defer func() { _ = mongodb.Disconnect(ctx, db) }()
	svc := movie.NewUsecase(mongodb.NewMovieRepository(db, cfg.Mongo.SearchIndex))

	cleanup := func() {}
	if csvPath == "" {
		path, c, err := downloadAndExtract(zipURL)
		if err != nil {
			slog.Error("failed to download dataset", "error", err)
			os.Exit(1)
		}
		csvPath = path
		cleanup = c
	}
	defer cleanup()

	count, err := importMovies(ctx, svc, csvPath, limit, batchSize)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("import completed", "rows", count)
}

func downloadAndExtract(zipURL string) (string, func(), error) {
	if zipURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return "", func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := downloadFile(zipURL, zipPath); err != nil {
		cleanup()
		return "", func() {}, err
	}

	csvPath, err := extractMoviesCSV(zipPath, tmpDir)
	if err != nil {
		cleanup()
		return "", func() {}, err
	}

	return csvPath, cleanup, nil
}

func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url) // nolint: noctx
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func extractMoviesCSV(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, file := range r.File {
		if !strings.HasSuffix(file.Name, "movies.csv") {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()

		destPath := filepath.Join(destDir, filepath.Base(file.Name))
		out, err := os.Create(destPath)
		if err != nil {
			return "", err
		}

		if _, err := io.Copy(out, src); err != nil {
			_ = out.Close()
			return "", err
		}
		if err := out.Close(); err != nil {
			return "", err
		}

		return destPath, nil
	}

	return "", errors.New("movies.csv not found in zip")
}

// importMovies reads movies.csv and inserts the rows in batches. It
// returns the number of movies inserted.
func importMovies(ctx context.Context, svc movie.Service, csvPath string, limit, batchSize int) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	idxTitle, idxGenres, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, err
	}

	count := 0
	batch := make([]movie.CreateRequest, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		res, err := svc.CreateMovies(ctx, batch)
		if err != nil {
			return err
		}
		count += res.InsertedCount
		slog.Info("inserted batch", "size", res.InsertedCount, "total", count)
		batch = make([]movie.CreateRequest, 0, batchSize)
		return nil
	}

	read := 0
	for limit <= 0 || read < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}
		req, ok := parseMovieRecord(record, idxTitle, idxGenres)
		if !ok {
			continue
		}

		batch = append(batch, req)
		read++
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return count, err
			}
		}
	}

	if err := flush(); err != nil {
		return count, err
	}
	return count, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxTitle, idxGenres := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			idxTitle = i
		case "genres":
			idxGenres = i
		}
	}
	if idxTitle == -1 || idxGenres == -1 {
		return 0, 0, errors.New("missing required columns in csv header")
	}

	return idxTitle, idxGenres, nil
}

func parseMovieRecord(record []string, idxTitle, idxGenres int) (movie.CreateRequest, bool) {
	if idxTitle >= len(record) || idxGenres >= len(record) {
		return movie.CreateRequest{}, false
	}

	title, year := splitTitleYear(strings.TrimSpace(record[idxTitle]))
	if title == "" {
		return movie.CreateRequest{}, false
	}

	return movie.CreateRequest{
		Title:  title,
		Year:   year,
		Genres: splitGenres(record[idxGenres]),
	}, true
}

// splitTitleYear separates "Heat (1995)" into its title and year. Titles
// without a year are returned unchanged with year 0.
func splitTitleYear(raw string) (string, int) {
	m := titleYearPattern.FindStringSubmatch(raw)
	if m == nil {
		return raw, 0
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return raw, 0
	}
	return strings.TrimSpace(m[1]), year
}

func splitGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == noGenres {
		return nil
	}

	var genres []string
	for _, g := range strings.Split(raw, "|") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
