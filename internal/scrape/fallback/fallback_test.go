package fallback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttempt_LaunchFailureIsEmptyResult(t *testing.T) {
	s := New(time.Second)
	s.launch = func() (session, error) {
		return session{}, errors.New("no chromium binary found")
	}

	out, err := s.Attempt(context.Background(), "https://x.example")
	require.NoError(t, err, "an unlaunchable browser must not poison the cascade")
	assert.Nil(t, out)
}

func TestAttempt_ConnectFailureKillsLaunchedBrowser(t *testing.T) {
	var killed, cleaned bool
	s := New(time.Second)
	s.launch = func() (session, error) {
		return session{
			controlURL: "ws://127.0.0.1:1/devtools",
			kill:       func() { killed = true },
			cleanup:    func() { cleaned = true },
		}, nil
	}
	s.connect = func(ctx context.Context, controlURL string) (*rod.Browser, error) {
		return nil, errors.New("connection refused")
	}

	out, err := s.Attempt(context.Background(), "https://x.example")
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.True(t, killed, "launched process must be killed when the session never connects")
	assert.True(t, cleaned, "profile dir must be removed on the connect-failure path")
}
