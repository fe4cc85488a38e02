// Package geocode переводит адреса катков в координаты через Kakao Local API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://dapi.kakao.com"

var ErrNoResults = errors.New("address not found")

type Coordinates struct {
	Lat float64
	Lng float64
}

type KakaoClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewKakaoClient создаёт клиент. baseURL пустой - боевой адрес Kakao.
func NewKakaoClient(apiKey, baseURL string, httpClient *http.Client) (*KakaoClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("kakao REST API key is required")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &KakaoClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

type kakaoResponse struct {
	Documents []struct {
		AddressName string `json:"address_name"`
		X           string `json:"x"`
		Y           string `json:"y"`
	} `json:"documents"`
}

// Geocode ищет адрес; если адресный поиск ничего не дал, пробует поиск по ключевому слову.
func (c *KakaoClient) Geocode(ctx context.Context, query string) (*Coordinates, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNoResults
	}
	coords, err := c.search(ctx, "/v2/local/search/address.json", query)
	if errors.Is(err, ErrNoResults) {
		return c.search(ctx, "/v2/local/search/keyword.json", query)
	}
	return coords, err
}

func (c *KakaoClient) search(ctx context.Context, path, query string) (*Coordinates, error) {
	endpoint := c.baseURL + path + "?" + url.Values{"query": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build kakao request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kakao request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kakao responded with status %d", resp.StatusCode)
	}

	var body kakaoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode kakao response: %w", err)
	}
	if len(body.Documents) == 0 {
		return nil, ErrNoResults
	}

	// Kakao отдаёт x = долгота, y = широта.
	doc := body.Documents[0]
	lng, err := strconv.ParseFloat(doc.X, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", doc.X, err)
	}
	lat, err := strconv.ParseFloat(doc.Y, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", doc.Y, err)
	}
	return &Coordinates{Lat: lat, Lng: lng}, nil
}

var commentReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// CommentLine формирует однострочный SQL-комментарий. Переводы строк заменяются пробелами,
// чтобы название катка или текст ошибки не вышли за пределы комментария.
func CommentLine(format string, args ...interface{}) string {
	return "-- " + commentReplacer.Replace(fmt.Sprintf(format, args...))
}

// UpdateStatement формирует SQL для ручного применения.
func UpdateStatement(rinkID int, c Coordinates) string {
	return fmt.Sprintf("UPDATE rinks SET lat = %.7f, lng = %.7f WHERE id = %d;", c.Lat, c.Lng, rinkID)
}
