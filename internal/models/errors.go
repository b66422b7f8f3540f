package models

import (
	"errors"
	"fmt"
)

var (
	ErrContentNotFound       = errors.New("content not found")
	ErrScheduledPostNotFound = errors.New("scheduled post not found")
	ErrChatNotFound          = errors.New("chat not found")

	// ErrPrecondition is wrapped by every error that rejects a request
	// before any external call is made.
	ErrPrecondition    = errors.New("precondition not met")
	ErrEmptyPrompt     = fmt.Errorf("%w: prompt cannot be empty", ErrPrecondition)
	ErrNoPlatforms     = fmt.Errorf("%w: select at least one platform", ErrPrecondition)
	ErrNotPublishReady = fmt.Errorf("%w: content is not ready to publish", ErrPrecondition)
	ErrNotConnected    = fmt.Errorf("%w: platform account is not connected", ErrPrecondition)
	ErrScheduleInPast  = fmt.Errorf("%w: scheduled time must be in the future", ErrPrecondition)
	ErrInvalidPlatform = fmt.Errorf("%w: unsupported platform", ErrPrecondition)
	ErrInvalidProvider = fmt.Errorf("%w: unsupported provider", ErrPrecondition)
	ErrStepUnreachable = fmt.Errorf("%w: step is not reachable", ErrPrecondition)
	ErrEmptyAPIKey     = fmt.Errorf("%w: api key cannot be empty", ErrPrecondition)
	ErrEmptyMessage    = fmt.Errorf("%w: message cannot be empty", ErrPrecondition)
	ErrUnsupportedFile = fmt.Errorf("%w: file type is not allowed", ErrPrecondition)
	ErrInvalidSettings = fmt.Errorf("%w: invalid generation settings", ErrPrecondition)
	ErrStatusReadOnly  = fmt.Errorf("%w: status is set by scheduling and publishing", ErrPrecondition)
	ErrScheduledTime   = fmt.Errorf("%w: a scheduled draft keeps its time until rescheduled", ErrPrecondition)

	// ErrMissingCredential means a provider needs an API key that is not
	// stored. It is raised before any network call.
	ErrMissingCredential = errors.New("missing api key")
)
