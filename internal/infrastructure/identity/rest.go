package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RESTVerifier validates ID tokens against the provider's token-lookup
// endpoint (the hosted-provider equivalent of verifyIdToken).
type RESTVerifier struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewRESTVerifier(endpoint, apiKey string) *RESTVerifier {
	return &RESTVerifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	} `json:"users"`
}

func (v *RESTVerifier) Verify(ctx context.Context, credential string) (*User, error) {
	body, err := json.Marshal(lookupRequest{IDToken: credential})
	if err != nil {
		return nil, fmt.Errorf("encode lookup request: %w", err)
	}

	url := v.endpoint
	if v.apiKey != "" {
		url += "?key=" + v.apiKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned %d", ErrInvalidCredential, resp.StatusCode)
	}

	var out lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}
	if len(out.Users) == 0 {
		return nil, ErrInvalidCredential
	}
	return &User{UID: out.Users[0].LocalID, Email: out.Users[0].Email}, nil
}
