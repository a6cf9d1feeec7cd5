package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/stayfinder/stayfinder-go/internal/types"
)

// AuthResponse mirrors the identity-toolkit auth response.
type AuthResponse struct {
	IDToken      string `json:"idToken"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
	ExpiresIn    string `json:"expiresIn"`
}

// TokenLifetime parses the server-provided lifetime (decimal seconds).
func (r *AuthResponse) TokenLifetime() (time.Duration, error) {
	secs, err := strconv.ParseFloat(r.ExpiresIn, 64)
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("invalid expiresIn %q", r.ExpiresIn)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

type authRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// authErrorBody is the backend's error envelope: {"error":{"message":CODE}}.
type authErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// authMessage translates backend error codes into the fixed user-facing
// strings; unrecognized codes get the generic message.
func authMessage(code string) string {
	switch code {
	case "EMAIL_EXISTS":
		return "This email address already exists!"
	case "EMAIL_NOT_FOUND":
		return "E-mail address could not be found."
	case "INVALID_PASSWORD":
		return "This password is not correct."
	default:
		return "Could not sign you up, please try again."
	}
}

// SignUp registers a new account.
func SignUp(ctx context.Context, httpClient *http.Client, authURL, apiKey, email, password string) (*AuthResponse, error) {
	return authCall(ctx, httpClient, authURL, "signupNewUser", apiKey, email, password)
}

// SignIn verifies an existing account's password.
func SignIn(ctx context.Context, httpClient *http.Client, authURL, apiKey, email, password string) (*AuthResponse, error) {
	return authCall(ctx, httpClient, authURL, "verifyPassword", apiKey, email, password)
}

func authCall(ctx context.Context, httpClient *http.Client, authURL, op, apiKey, email, password string) (*AuthResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(authRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/%s?key=%s", authURL, op, url.QueryEscape(apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var envelope authErrorBody
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
			code := envelope.Error.Message
			return nil, &types.AuthError{Code: code, Message: authMessage(code)}
		}
		return nil, &types.StatusError{Op: op, StatusCode: resp.StatusCode}
	}

	var ar AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, err
	}
	return &ar, nil
}
