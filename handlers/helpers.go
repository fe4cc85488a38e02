package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/power-play/middleware"
	"github.com/Dosada05/power-play/services"
	"github.com/Dosada05/power-play/storage"
)

type jsonResponse map[string]interface{}

const (
	maxJSONBodyBytes   = 1_048_576 // 1MB
	maxUploadBodyBytes = 10 << 20
	defaultPageLimit   = 20
)

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxJSONBodyBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxJSONBodyBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // ошибка программиста: передан не указатель
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Default().Error("failed to write error response",
			slog.String("path", r.URL.Path), slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Default().Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		message = "the requested resource could not be found"
	}
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrClubNotFound),
		errors.Is(err, services.ErrClubMemberNotFound),
		errors.Is(err, services.ErrRinkNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrParticipantNotFound),
		errors.Is(err, services.ErrChargeNotFound),
		errors.Is(err, services.ErrChatRoomNotFound):
		notFoundResponse(w, r, err.Error())

	// Конфликты
	case errors.Is(err, services.ErrEmailConflict),
		errors.Is(err, services.ErrAlreadyRegistered),
		errors.Is(err, services.ErrClubNameConflict),
		errors.Is(err, services.ErrAlreadyClubMember),
		errors.Is(err, services.ErrRinkInUse),
		errors.Is(err, services.ErrChargeAlreadyProcessed),
		errors.Is(err, services.ErrPositionFull):
		conflictResponse(w, r, err.Error())

	case errors.Is(err, services.ErrValidationFailed):
		errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())

	// Невалидные данные и бизнес-правила
	case errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidPosition),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrDepositorNameRequired),
		errors.Is(err, services.ErrMatchNotOpen),
		errors.Is(err, services.ErrMatchAlreadyStarted),
		errors.Is(err, services.ErrMatchInvalidCapacity),
		errors.Is(err, services.ErrMatchInvalidStartTime),
		errors.Is(err, services.ErrMatchInvalidFee),
		errors.Is(err, services.ErrInsufficientPoints),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrMessageTooLong),
		errors.Is(err, services.ErrChatWithSelf),
		errors.Is(err, services.ErrClubNameRequired),
		errors.Is(err, services.ErrRinkNameRequired),
		errors.Is(err, services.ErrInvalidRinkType),
		errors.Is(err, services.ErrInvalidPushSubscription),
		errors.Is(err, services.ErrLastClubAdmin),
		errors.Is(err, storage.ErrUnsupportedContentType):
		badRequestResponse(w, r, err)

	// Аутентификация и доступ
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountDeleted):
		unauthorizedResponse(w, r, err.Error())
	case errors.Is(err, services.ErrForbiddenOperation),
		errors.Is(err, services.ErrAdminRequired),
		errors.Is(err, services.ErrSuperuserRequired),
		errors.Is(err, services.ErrClubAdminRequired),
		errors.Is(err, services.ErrOnboardingRequired),
		errors.Is(err, services.ErrNotChatMember):
		forbiddenResponse(w, r, err.Error())

	case errors.Is(err, services.ErrStorageUnavailable):
		errorResponse(w, r, http.StatusServiceUnavailable, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}

// getIDFromURL извлекает положительный целый параметр пути.
func getIDFromURL(r *http.Request, paramName string) (int, error) {
	idStr := chi.URLParam(r, paramName)
	if idStr == "" {
		return 0, fmt.Errorf("missing %s in URL path", paramName)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %q", paramName, idStr)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s value: %d", paramName, id)
	}
	return id, nil
}

// actorFromRequest возвращает текущего пользователя, положенного middleware.Authenticate.
func actorFromRequest(r *http.Request) (services.Actor, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok || user.ID <= 0 {
		return services.Actor{}, false
	}
	return services.Actor{ID: user.ID, Role: user.Role}, true
}

// readPaging читает ?page= и ?limit=; некорректные значения заменяются значениями по умолчанию.
func readPaging(r *http.Request) (page, limit int) {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	limit, err = strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPageLimit
	}
	return page, limit
}

func optionalIntQuery(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("invalid %s query parameter: %q", name, raw)
	}
	return &v, nil
}

// readImageUpload разбирает multipart-форму и возвращает файл из поля field.
// Вызывающий обязан закрыть файл.
func readImageUpload(w http.ResponseWriter, r *http.Request, field string) (io.ReadCloser, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodyBytes)
	if err := r.ParseMultipartForm(maxUploadBodyBytes); err != nil {
		return nil, "", fmt.Errorf("failed to parse multipart form: %w", err)
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get %s file from form: %w", field, err)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		file.Close()
		return nil, "", fmt.Errorf("content-type header is required for %s", field)
	}
	return file, contentType, nil
}
