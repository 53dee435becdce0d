package source

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sdpower/ccwatch-go/internal/credentials"
	"github.com/sdpower/ccwatch-go/internal/types"
	"go.uber.org/zap"
)

const (
	// DefaultUsageURL is the OAuth usage endpoint. The cookie-based web
	// endpoints this tool historically talked to are not supported.
	DefaultUsageURL = "https://api.anthropic.com/api/oauth/usage"

	betaHeader = "oauth-2025-04-20"
)

// windowKeys are the candidate top-level field names for the current
// session window, tried in order. The schema has drifted across server
// releases; keeping the list as data makes the next rename a one-line
// change.
var windowKeys = []string{"five_hour", "current_session", "session"}

// remoteWindow is the nested window object inside the usage response.
type remoteWindow struct {
	Utilization float64   `json:"utilization"`
	ResetsAt    time.Time `json:"resets_at"`
}

// CredentialsFunc supplies the auth bundle for one fetch attempt.
type CredentialsFunc func() (*credentials.Credentials, error)

// Remote fetches utilization from the authenticated usage endpoint.
type Remote struct {
	// Enabled gates the whole source; when false Fetch always reports
	// no data without touching the network.
	Enabled bool
	URL     string

	client *http.Client
	creds  CredentialsFunc
	log    *zap.Logger
	now    func() time.Time
}

// NewRemote builds the remote adapter. creds defaults to
// credentials.Load when nil.
func NewRemote(enabled bool, timeout time.Duration, creds CredentialsFunc, log *zap.Logger) *Remote {
	if creds == nil {
		creds = credentials.Load
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Remote{
		Enabled: enabled,
		URL:     DefaultUsageURL,
		client:  &http.Client{Timeout: timeout},
		creds:   creds,
		log:     log,
		now:     time.Now,
	}
}

func (s *Remote) Name() types.SourceTag {
	return types.SourceRemote
}

// Fetch performs one authenticated GET and normalizes the response.
// Challenge pages (HTML bodies), missing window keys, non-200 statuses
// and absent/expired credentials are soft failures; network errors are
// hard failures. Either way the caller gets no data and falls back.
func (s *Remote) Fetch(ctx context.Context) (*types.Snapshot, error) {
	if !s.Enabled {
		return nil, nil
	}

	creds, err := s.creds()
	if err != nil {
		s.log.Debug("remote: no usable credentials", zap.Error(err))
		return nil, nil
	}
	if creds.IsExpired() {
		s.log.Debug("remote: token expired")
		return nil, types.ErrTokenExpired
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &types.TransportError{URL: s.URL, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken())
	req.Header.Set("anthropic-beta", betaHeader)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("remote: request failed", zap.Error(err))
		return nil, &types.TransportError{URL: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Debug("remote: unexpected status", zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.TransportError{URL: s.URL, Err: err}
	}

	// An HTML body here is an intermediary challenge page, not an API
	// error, so it soft-fails rather than propagating.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		s.log.Debug("remote: non-JSON body", zap.Error(err))
		return nil, nil
	}

	window, ok := currentWindow(fields)
	if !ok {
		s.log.Debug("remote: no window key in response")
		return nil, nil
	}

	now := s.now()
	return &types.Snapshot{
		Percentage:       types.Pct(int(math.Round(window.Utilization))),
		RemainingMinutes: remainingMinutes(window.ResetsAt, now),
		Source:           types.SourceRemote,
		FetchedAt:        now,
	}, nil
}

// currentWindow returns the first candidate window field present in the
// response body.
func currentWindow(fields map[string]json.RawMessage) (remoteWindow, bool) {
	for _, key := range windowKeys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var w remoteWindow
		if err := json.Unmarshal(raw, &w); err != nil {
			continue
		}
		return w, true
	}
	return remoteWindow{}, false
}
