package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/power-play/geocode"
	"github.com/Dosada05/power-play/models"
)

type stubGeocoder struct {
	results map[string]geocode.Coordinates
	onCall  func()
}

func (s stubGeocoder) Geocode(_ context.Context, query string) (*geocode.Coordinates, error) {
	if s.onCall != nil {
		s.onCall()
	}
	c, ok := s.results[query]
	if !ok {
		return nil, geocode.ErrNoResults
	}
	return &c, nil
}

func TestWriteStatements_OnlyUpdatesLeaveComments(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := stubGeocoder{results: map[string]geocode.Coordinates{
		"서울 양천구 안양천로 939": {Lat: 37.53, Lng: 126.875},
	}}
	rinks := []*models.Rink{
		{ID: 1, NameKo: "목동\nUPDATE rinks SET lat = 0 WHERE id = 2;", Address: "서울 양천구 안양천로 939"},
		{ID: 2, NameKo: "없는 링크\r\nDELETE FROM rinks;"},
	}

	var buf bytes.Buffer
	found, err := writeStatements(context.Background(), logger, client, rinks, 0, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, found)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "UPDATE rinks SET lat = 37.5300000, lng = 126.8750000 WHERE id = 1;", lines[1])
	for i, line := range lines {
		if i == 1 {
			continue
		}
		assert.True(t, strings.HasPrefix(line, "-- "), line)
	}
}

func TestWriteStatements_StopsOnCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	client := stubGeocoder{
		results: map[string]geocode.Coordinates{"a": {Lat: 1, Lng: 2}, "b": {Lat: 3, Lng: 4}},
		onCall:  cancel,
	}
	rinks := []*models.Rink{{ID: 1, Address: "a"}, {ID: 2, Address: "b"}}

	var buf bytes.Buffer
	found, err := writeStatements(ctx, logger, client, rinks, time.Minute, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, found)
	assert.Contains(t, buf.String(), "WHERE id = 1;")
	assert.NotContains(t, buf.String(), "WHERE id = 2;")
}
