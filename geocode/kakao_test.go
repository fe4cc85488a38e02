package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kakaoStub struct {
	mu        sync.Mutex
	paths     []string
	responses map[string]string
}

func (s *kakaoStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.paths = append(s.paths, r.URL.Path)
	s.mu.Unlock()

	if r.Header.Get("Authorization") != "KakaoAK test-key" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	body, ok := s.responses[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func newStubClient(t *testing.T, stub *kakaoStub) *KakaoClient {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	client, err := NewKakaoClient("test-key", srv.URL+"/", srv.Client())
	require.NoError(t, err)
	return client
}

const emptyDocuments = `{"documents": []}`

func TestGeocode_AddressHit(t *testing.T) {
	stub := &kakaoStub{responses: map[string]string{
		"/v2/local/search/address.json": `{"documents": [{"address_name": "서울 양천구 안양천로 939", "x": "126.8750000", "y": "37.5300000"}]}`,
	}}
	client := newStubClient(t, stub)

	coords, err := client.Geocode(context.Background(), " 서울 양천구 안양천로 939 ")
	require.NoError(t, err)
	assert.InDelta(t, 37.53, coords.Lat, 1e-9)
	assert.InDelta(t, 126.875, coords.Lng, 1e-9)
	assert.Equal(t, []string{"/v2/local/search/address.json"}, stub.paths)
}

func TestGeocode_FallsBackToKeyword(t *testing.T) {
	stub := &kakaoStub{responses: map[string]string{
		"/v2/local/search/address.json": emptyDocuments,
		"/v2/local/search/keyword.json": `{"documents": [{"x": "127.1", "y": "37.2"}]}`,
	}}
	client := newStubClient(t, stub)

	coords, err := client.Geocode(context.Background(), "목동 아이스링크")
	require.NoError(t, err)
	assert.Equal(t, Coordinates{Lat: 37.2, Lng: 127.1}, *coords)
	assert.Equal(t, []string{"/v2/local/search/address.json", "/v2/local/search/keyword.json"}, stub.paths)
}

func TestGeocode_Errors(t *testing.T) {
	stub := &kakaoStub{responses: map[string]string{
		"/v2/local/search/address.json": emptyDocuments,
		"/v2/local/search/keyword.json": emptyDocuments,
	}}
	client := newStubClient(t, stub)

	_, err := client.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNoResults)

	_, err = client.Geocode(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNoResults)

	broken := newStubClient(t, &kakaoStub{responses: map[string]string{
		"/v2/local/search/address.json": `{"documents": [{"x": "east", "y": "37.2"}]}`,
	}})
	_, err = broken.Geocode(context.Background(), "somewhere")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoResults)

	failing := newStubClient(t, &kakaoStub{})
	_, err = failing.Geocode(context.Background(), "somewhere")
	assert.ErrorContains(t, err, "status 500")

	_, err = NewKakaoClient(" ", "", nil)
	assert.Error(t, err)
}

func TestUpdateStatement(t *testing.T) {
	assert.Equal(t,
		"UPDATE rinks SET lat = 37.5300000, lng = 126.8750000 WHERE id = 4;",
		UpdateStatement(4, Coordinates{Lat: 37.53, Lng: 126.875}),
	)
}

func TestCommentLine(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "plain name",
			got:  CommentLine("%s", "목동 아이스링크"),
			want: "-- 목동 아이스링크",
		},
		{
			name: "newline in name",
			got:  CommentLine("%s", "Rink\nUPDATE rinks SET lat = 0;"),
			want: "-- Rink UPDATE rinks SET lat = 0;",
		},
		{
			name: "carriage returns in error text",
			got:  CommentLine("rink %d (%s): %v", 4, "A\r\nB", errors.New("bad\rgateway")),
			want: "-- rink 4 (A B): bad gateway",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
			assert.NotContains(t, tt.got, "\n")
			assert.NotContains(t, tt.got, "\r")
		})
	}
}
