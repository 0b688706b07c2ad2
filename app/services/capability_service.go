// Package services provides external service integrations and technical concerns like capability checks and tokens
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rcsuite/console/config"
	"github.com/rcsuite/console/utils"
	"github.com/redis/go-redis/v9"
)

// ErrCapabilityUnavailable marks a network or service failure, as opposed to
// a negative verdict. Callers reset affected records to unknown instead of
// marking them not capable.
var ErrCapabilityUnavailable = errors.New("capability service unavailable")

// CapabilityService resolves which numbers are reachable on the RCS channel
type CapabilityService interface {
	CheckBatch(ctx context.Context, numbers []string, accountID string) (*CapabilityResult, error)
	CheckSingle(ctx context.Context, number, accountID string) (bool, error)
}

// CapabilityResult holds per-number verdicts from one batch check. Numbers
// the service did not vouch for are not capable.
type CapabilityResult struct {
	capable map[string]bool
}

// NewCapabilityResult builds a result from an explicit verdict set
func NewCapabilityResult(capable map[string]bool) *CapabilityResult {
	if capable == nil {
		capable = make(map[string]bool)
	}
	return &CapabilityResult{capable: capable}
}

// Capable reports whether the service vouched for the number. Absence means
// not capable.
func (r *CapabilityResult) Capable(number string) bool {
	return r.capable[number]
}

// CapableNumbers returns the numbers the service vouched for
func (r *CapabilityResult) CapableNumbers() []string {
	numbers := make([]string, 0, len(r.capable))
	for n, ok := range r.capable {
		if ok {
			numbers = append(numbers, n)
		}
	}
	return numbers
}

// capabilityRequest is the request payload for the capability API
type capabilityRequest struct {
	PhoneNumbers []string `json:"phoneNumbers"`
	AccountID    string   `json:"accountId"`
	BotID        string   `json:"botId,omitempty"`
}

// reachableUsersResponse is the flat-list response form
type reachableUsersResponse struct {
	ReachableUsers []string `json:"reachableUsers"`
}

// featureEntry is one entry of the per-number map response form
type featureEntry struct {
	Features []string `json:"features"`
}

// CapabilityServiceImpl implements CapabilityService
type CapabilityServiceImpl struct {
	config *config.RCSConfig
	client *http.Client
	cache  redis.UniversalClient
	prefix string
}

// NewCapabilityService creates a new capability service instance. The cache
// client may be nil; verdicts are then fetched fresh on every call.
func NewCapabilityService(cfg *config.RCSConfig, cache redis.UniversalClient, cachePrefix string) CapabilityService {
	timeout := cfg.CapabilityTimeout
	if timeout <= 0 {
		timeout = cfg.Timeout
	}
	return &CapabilityServiceImpl{
		config: cfg,
		client: &http.Client{
			Timeout: timeout,
		},
		cache:  cache,
		prefix: cachePrefix,
	}
}

// CheckBatch resolves capability for a batch of canonical numbers
func (s *CapabilityServiceImpl) CheckBatch(ctx context.Context, numbers []string, accountID string) (*CapabilityResult, error) {
	if len(numbers) == 0 {
		return NewCapabilityResult(nil), nil
	}

	verdicts := make(map[string]bool, len(numbers))
	missing := s.fromCache(ctx, accountID, numbers, verdicts)
	if len(missing) == 0 {
		return NewCapabilityResult(verdicts), nil
	}

	fresh, err := s.query(ctx, missing, accountID)
	if err != nil {
		return nil, err
	}

	for _, n := range missing {
		verdicts[n] = fresh[n]
	}
	s.storeCache(ctx, accountID, missing, fresh)

	return NewCapabilityResult(verdicts), nil
}

// CheckSingle resolves capability for one number
func (s *CapabilityServiceImpl) CheckSingle(ctx context.Context, number, accountID string) (bool, error) {
	result, err := s.CheckBatch(ctx, []string{number}, accountID)
	if err != nil {
		return false, err
	}
	return result.Capable(number), nil
}

// query performs the network call and parses either response form
func (s *CapabilityServiceImpl) query(ctx context.Context, numbers []string, accountID string) (map[string]bool, error) {
	payload := capabilityRequest{
		PhoneNumbers: numbers,
		AccountID:    accountID,
		BotID:        s.config.BotID,
	}

	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal capability request: %w", err)
	}

	url := fmt.Sprintf("https://%s/api/v1/capability/check", s.config.ProviderDomain)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapabilityUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrCapabilityUnavailable, resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrCapabilityUnavailable, err)
	}

	return ParseCapabilityResponse(raw, numbers)
}

// ParseCapabilityResponse interprets either response form the backend emits.
// Form A carries a reachableUsers list; presence means capable. Form B maps
// each number to its feature set; a non-empty feature list means capable.
// Requested numbers absent from the response are not capable.
func ParseCapabilityResponse(raw json.RawMessage, requested []string) (map[string]bool, error) {
	verdicts := make(map[string]bool, len(requested))
	for _, n := range requested {
		verdicts[n] = false
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: unexpected response shape", ErrCapabilityUnavailable)
	}

	if _, ok := probe["reachableUsers"]; ok {
		var listResp reachableUsersResponse
		if err := json.Unmarshal(raw, &listResp); err != nil {
			return nil, fmt.Errorf("%w: unexpected reachableUsers shape", ErrCapabilityUnavailable)
		}
		for _, n := range listResp.ReachableUsers {
			if _, wanted := verdicts[n]; wanted {
				verdicts[n] = true
			}
		}
		return verdicts, nil
	}

	for number, entryRaw := range probe {
		if _, wanted := verdicts[number]; !wanted {
			continue
		}
		var entry featureEntry
		if err := json.Unmarshal(entryRaw, &entry); err != nil {
			continue
		}
		if len(entry.Features) > 0 {
			verdicts[number] = true
		}
	}

	return verdicts, nil
}

// fromCache fills verdicts for cached numbers and returns the misses
func (s *CapabilityServiceImpl) fromCache(ctx context.Context, accountID string, numbers []string, verdicts map[string]bool) []string {
	if s.cache == nil || s.config.CapabilityCacheTTL <= 0 {
		return numbers
	}

	keys := make([]string, len(numbers))
	for i, n := range numbers {
		keys[i] = s.cacheKey(accountID, n)
	}

	values, err := s.cache.MGet(ctx, keys...).Result()
	if err != nil {
		return numbers
	}

	var missing []string
	for i, v := range values {
		switch v {
		case "1":
			verdicts[numbers[i]] = true
		case "0":
			verdicts[numbers[i]] = false
		default:
			missing = append(missing, numbers[i])
		}
	}

	return missing
}

// storeCache records fresh verdicts; cache failures are not surfaced
func (s *CapabilityServiceImpl) storeCache(ctx context.Context, accountID string, numbers []string, verdicts map[string]bool) {
	if s.cache == nil || s.config.CapabilityCacheTTL <= 0 {
		return
	}

	pipe := s.cache.Pipeline()
	for _, n := range numbers {
		value := "0"
		if verdicts[n] {
			value = "1"
		}
		pipe.Set(ctx, s.cacheKey(accountID, n), value, s.config.CapabilityCacheTTL)
	}
	_, _ = pipe.Exec(ctx)
}

// Verdicts are scoped per RCS account; different bots can see different
// reachability for the same number.
func (s *CapabilityServiceImpl) cacheKey(accountID, number string) string {
	return s.prefix + "capability:" + accountID + ":" + number
}

// MockCapabilityService implements CapabilityService for testing
type MockCapabilityService struct {
	CapableNumbers map[string]bool
	Err            error
	Calls          []MockCapabilityCall
}

// MockCapabilityCall records one capability check invocation
type MockCapabilityCall struct {
	Numbers   []string
	AccountID string
	At        time.Time
}

// NewMockCapabilityService creates a new mock capability service
func NewMockCapabilityService() *MockCapabilityService {
	return &MockCapabilityService{
		CapableNumbers: make(map[string]bool),
	}
}

func (m *MockCapabilityService) CheckBatch(ctx context.Context, numbers []string, accountID string) (*CapabilityResult, error) {
	m.Calls = append(m.Calls, MockCapabilityCall{
		Numbers:   append([]string(nil), numbers...),
		AccountID: accountID,
		At:        utils.UTCNow(),
	})
	if m.Err != nil {
		return nil, m.Err
	}
	verdicts := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		verdicts[n] = m.CapableNumbers[n]
	}
	return NewCapabilityResult(verdicts), nil
}

func (m *MockCapabilityService) CheckSingle(ctx context.Context, number, accountID string) (bool, error) {
	result, err := m.CheckBatch(ctx, []string{number}, accountID)
	if err != nil {
		return false, err
	}
	return result.Capable(number), nil
}
