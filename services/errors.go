package services

import "errors"

// Общие ошибки сервисного слоя; handlers.mapServiceErrorToHTTP переводит их в HTTP-статусы.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Валидация и бизнес-правила
	ErrValidationFailed        = errors.New("validation failed")
	ErrPasswordTooShort        = errors.New("password is too short")
	ErrInvalidEmail            = errors.New("email address is invalid")
	ErrInvalidPosition         = errors.New("position must be one of FW, DF, G")
	ErrInvalidStatus           = errors.New("invalid status value")
	ErrInvalidRole             = errors.New("invalid role value")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrDepositorNameRequired   = errors.New("depositor name is required")
	ErrMatchNotOpen            = errors.New("match is not open for registration")
	ErrMatchAlreadyStarted     = errors.New("match has already started")
	ErrMatchInvalidCapacity    = errors.New("match capacity must not be negative and at least one position must be open")
	ErrMatchInvalidStartTime   = errors.New("match start time must be in the future")
	ErrMatchInvalidFee         = errors.New("entry points must not be negative")
	ErrPositionFull            = errors.New("no seats left for this position")
	ErrChargeAlreadyProcessed  = errors.New("point charge request has already been processed")
	ErrInsufficientPoints      = errors.New("not enough points")
	ErrEmptyMessage            = errors.New("message must not be empty")
	ErrMessageTooLong          = errors.New("message is too long")
	ErrChatWithSelf            = errors.New("cannot open a chat with yourself")
	ErrClubNameRequired        = errors.New("club name is required")
	ErrRinkNameRequired        = errors.New("rink korean name is required")
	ErrInvalidRinkType         = errors.New("rink type must be full or mini")
	ErrInvalidPushSubscription = errors.New("push subscription endpoint and keys are required")
	ErrStorageUnavailable      = errors.New("file storage is not configured")
	ErrLastClubAdmin           = errors.New("the last club admin cannot leave the club")

	// Конфликты
	ErrEmailConflict     = errors.New("email address is already in use")
	ErrAlreadyRegistered = errors.New("user is already registered for this match")
	ErrClubNameConflict  = errors.New("club name is already in use")
	ErrAlreadyClubMember = errors.New("user has already applied to or joined this club")
	ErrRinkInUse         = errors.New("rink is used by existing matches")

	// Аутентификация и авторизация
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDeleted     = errors.New("account has been deleted")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")
	ErrAdminRequired      = errors.New("admin privileges required")
	ErrSuperuserRequired  = errors.New("superuser privileges required")
	ErrClubAdminRequired  = errors.New("club admin privileges required")
	ErrOnboardingRequired = errors.New("onboarding must be completed first")
	ErrNotChatMember      = errors.New("user is not a member of this chat room")

	// Не найдено
	ErrUserNotFound        = errors.New("user not found")
	ErrClubNotFound        = errors.New("club not found")
	ErrClubMemberNotFound  = errors.New("club membership not found")
	ErrRinkNotFound        = errors.New("rink not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrParticipantNotFound = errors.New("participant registration not found")
	ErrChargeNotFound      = errors.New("point charge request not found")
	ErrChatRoomNotFound    = errors.New("chat room not found")
)
