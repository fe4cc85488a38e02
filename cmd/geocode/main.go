// Команда geocode заполняет координаты катков: для каждого катка без lat/lng
// запрашивает Kakao Local API и пишет UPDATE-выражения в файл для ручного применения.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/power-play/config"
	"github.com/Dosada05/power-play/db"
	"github.com/Dosada05/power-play/geocode"
	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/repositories"
)

func main() {
	out := flag.String("out", "rink_coordinates.sql", "файл для UPDATE-выражений")
	delay := flag.Duration("delay", 200*time.Millisecond, "пауза между запросами к Kakao")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(logger, *out, *delay); err != nil {
		logger.Error("geocode failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, outPath string, delay time.Duration) error {
	cfg, err := config.LoadGeocode()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	client, err := geocode.NewKakaoClient(cfg.KakaoRESTAPIKey, "", nil)
	if err != nil {
		return err
	}

	rinks, err := repositories.NewPostgresRinkRepository(dbConn).ListMissingCoordinates(ctx)
	if err != nil {
		return err
	}
	logger.Info("rinks without coordinates", slog.Int("count", len(rinks)))

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	found, err := writeStatements(ctx, logger, client, rinks, delay, w)
	// Уже найденные координаты сохраняются и при прерывании.
	if flushErr := w.Flush(); flushErr != nil && err == nil {
		err = fmt.Errorf("failed to write output file: %w", flushErr)
	}
	if err != nil {
		return err
	}
	logger.Info("geocoding finished", slog.Int("found", found), slog.Int("total", len(rinks)), slog.String("out", outPath))
	return nil
}

type geocoder interface {
	Geocode(ctx context.Context, query string) (*geocode.Coordinates, error)
}

// writeStatements пишет UPDATE для каждого найденного катка и комментарий для ненайденного.
func writeStatements(ctx context.Context, logger *slog.Logger, client geocoder, rinks []*models.Rink, delay time.Duration, w io.Writer) (int, error) {
	found := 0
	for i, rink := range rinks {
		if i > 0 {
			select {
			case <-ctx.Done():
				return found, ctx.Err()
			case <-time.After(delay):
			}
		}
		query := rink.Address
		if query == "" {
			query = rink.NameKo
		}
		coords, err := client.Geocode(ctx, query)
		if err != nil {
			logger.Warn("failed to geocode rink", slog.Int("rink_id", rink.ID), slog.String("query", query), slog.Any("error", err))
			fmt.Fprintln(w, geocode.CommentLine("rink %d (%s): %v", rink.ID, rink.NameKo, err))
			continue
		}
		fmt.Fprintln(w, geocode.CommentLine("%s", rink.NameKo))
		fmt.Fprintln(w, geocode.UpdateStatement(rink.ID, *coords))
		found++
	}
	return found, nil
}
