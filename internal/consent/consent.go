// Package consent records the viewer's cookie banner choice, locally and,
// for signed-in viewers, on the board backend.
package consent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"board-view-api/internal/models"
	"board-view-api/internal/upstream"

	log "github.com/sirupsen/logrus"
)

// Names shared with the board page.
const (
	StorageKey      = "tm_cookie_consent_v1"
	OptionalCookie  = "_tm_optional"
	AnalyticsCookie = "_ga"
)

// Timings of the reject flow: the warning note stays up before the banner
// hides, and a signed-in viewer is logged out shortly after choosing.
const (
	LogoutDelay     = 900 * time.Millisecond
	RejectHideDelay = 1200 * time.Millisecond
	OptionalMaxAge  = 180 * 24 * time.Hour
)

// RejectNote is shown when every cookie is rejected.
const RejectNote = "Has rechazado todas las cookies. Algunas funciones de acceso y formularios pueden quedar deshabilitadas."

// ErrInvalidChoice is returned for a choice the banner does not offer.
var ErrInvalidChoice = errors.New("invalid consent choice")

// Backend is the board backend's consent and session API.
type Backend interface {
	GetConsent(ctx context.Context, creds upstream.Credentials) (models.ConsentChoice, error)
	PostConsent(ctx context.Context, creds upstream.Credentials, choice models.ConsentChoice) error
	Logout(ctx context.Context, creds upstream.Credentials) error
}

// LocalStore persists per-viewer values.
type LocalStore interface {
	Get(viewerID, key string) (string, bool, error)
	Set(viewerID, key, value string) error
}

// Scheduler runs f after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Viewer identifies who is answering the banner.
type Viewer struct {
	ID            string
	Authenticated bool
	Creds         upstream.Credentials
}

// BannerState tells the page whether to prompt.
type BannerState struct {
	Show   bool                 `json:"show"`
	Choice models.ConsentChoice `json:"choice,omitempty"`
}

// Cookie is a cookie the page must set.
type Cookie struct {
	Name   string        `json:"name"`
	Value  string        `json:"value"`
	MaxAge time.Duration `json:"-"`
}

// Effects are the side effects of a choice, applied by the HTTP layer.
type Effects struct {
	Choice       models.ConsentChoice `json:"choice"`
	SetCookies   []Cookie             `json:"set_cookies"`
	ClearCookies []string             `json:"clear_cookies"`
	Note         string               `json:"note,omitempty"`
	Synced       bool                 `json:"synced"`
	// LogoutAfter is non-zero when a sign-out was scheduled.
	LogoutAfter time.Duration `json:"-"`
	HideAfter   time.Duration `json:"-"`
}

// Service implements the banner's load and choose flows.
type Service struct {
	backend   Backend
	store     LocalStore
	scheduler Scheduler
	logger    log.FieldLogger
	now       func() time.Time
}

// New creates a Service. A nil scheduler uses time.AfterFunc.
func New(backend Backend, store LocalStore, scheduler Scheduler, logger log.FieldLogger) *Service {
	if scheduler == nil {
		scheduler = timeScheduler{}
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Service{backend: backend, store: store, scheduler: scheduler, logger: logger, now: time.Now}
}

// Load decides whether the banner must be shown. A choice stored on the
// backend wins over the local one and is copied locally.
func (s *Service) Load(ctx context.Context, v Viewer) (BannerState, error) {
	if v.Authenticated {
		choice, err := s.backend.GetConsent(ctx, v.Creds)
		if err != nil {
			s.logger.WithError(err).WithField("viewer", v.ID).Debug("load consent from backend")
		}
		if err == nil && choice.Valid() {
			if err := s.remember(v.ID, choice); err != nil {
				return BannerState{}, err
			}
			return BannerState{Show: false, Choice: choice}, nil
		}
	}

	rec, ok, err := s.Stored(v.ID)
	if err != nil {
		return BannerState{}, err
	}
	if ok {
		return BannerState{Show: false, Choice: rec.Choice}, nil
	}
	return BannerState{Show: true}, nil
}

// Stored returns the locally remembered choice.
func (s *Service) Stored(viewerID string) (models.ConsentRecord, bool, error) {
	raw, ok, err := s.store.Get(viewerID, StorageKey)
	if err != nil || !ok {
		return models.ConsentRecord{}, false, err
	}
	var rec models.ConsentRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		// Something is stored, which is all the banner checks for.
		return models.ConsentRecord{}, true, nil
	}
	return rec, true, nil
}

// Choose records an explicit choice and returns its effects. Backend
// mirroring is best effort: failures are logged and the local choice stands.
func (s *Service) Choose(ctx context.Context, v Viewer, choice models.ConsentChoice) (Effects, error) {
	if !choice.Valid() {
		return Effects{}, fmt.Errorf("%q: %w", choice, ErrInvalidChoice)
	}
	if err := s.remember(v.ID, choice); err != nil {
		return Effects{}, err
	}

	fx := Effects{Choice: choice}
	if v.Authenticated && v.Creds.CSRFToken != "" {
		if err := s.backend.PostConsent(ctx, v.Creds, choice); err != nil {
			s.logger.WithError(err).WithField("viewer", v.ID).Debug("sync consent to backend")
		} else {
			fx.Synced = true
		}
	}

	switch choice {
	case models.ConsentAll:
		fx.SetCookies = []Cookie{{Name: OptionalCookie, Value: "1", MaxAge: OptionalMaxAge}}
		fx.ClearCookies = []string{AnalyticsCookie}
	case models.ConsentEssential:
		fx.ClearCookies = []string{OptionalCookie, AnalyticsCookie}
	case models.ConsentReject:
		fx.ClearCookies = []string{OptionalCookie, AnalyticsCookie, upstream.CSRFCookie, upstream.SessionCookie}
		fx.Note = RejectNote
		fx.HideAfter = RejectHideDelay
		if v.Authenticated {
			s.scheduleLogout(v)
			fx.LogoutAfter = LogoutDelay
			fx.HideAfter = 0
		}
	}
	return fx, nil
}

func (s *Service) remember(viewerID string, choice models.ConsentChoice) error {
	data, err := json.Marshal(models.ConsentRecord{Choice: choice, At: s.now().UTC()})
	if err != nil {
		return err
	}
	if err := s.store.Set(viewerID, StorageKey, string(data)); err != nil {
		return fmt.Errorf("remember consent: %w", err)
	}
	return nil
}

func (s *Service) scheduleLogout(v Viewer) {
	creds := v.Creds
	logger := s.logger.WithField("viewer", v.ID)
	s.scheduler.AfterFunc(LogoutDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.backend.Logout(ctx, creds); err != nil {
			logger.WithError(err).Warn("sign out after rejecting cookies")
			return
		}
		logger.Info("signed out after rejecting cookies")
	})
}
