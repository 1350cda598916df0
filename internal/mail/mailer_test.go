package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	t.Parallel()

	t.Run("nil is not transient", func(t *testing.T) {
		require.False(t, IsTransient(nil))
	})

	t.Run("network timeout is transient", func(t *testing.T) {
		require.True(t, IsTransient(timeoutErr{}))
		require.True(t, IsTransient(fmt.Errorf("send: %w", timeoutErr{})))
	})

	t.Run("deadline exceeded is transient", func(t *testing.T) {
		require.True(t, IsTransient(context.DeadlineExceeded))
	})

	t.Run("connection errors are transient", func(t *testing.T) {
		require.True(t, IsTransient(&net.OpError{Op: "dial", Err: errors.New("refused")}))
		require.True(t, IsTransient(fmt.Errorf("dial: %w", syscall.ECONNREFUSED)))
		require.True(t, IsTransient(fmt.Errorf("write: %w", syscall.ECONNRESET)))
	})

	t.Run("smtp 5xx is transient", func(t *testing.T) {
		require.True(t, IsTransient(&textproto.Error{Code: 550, Msg: "mailbox unavailable"}))
		require.True(t, IsTransient(&textproto.Error{Code: 554, Msg: "transaction failed"}))
	})

	t.Run("smtp 4xx is not transient", func(t *testing.T) {
		require.False(t, IsTransient(&textproto.Error{Code: 450, Msg: "try again later"}))
	})

	t.Run("plain errors are not transient", func(t *testing.T) {
		require.False(t, IsTransient(errors.New("invalid recipient")))
	})
}

func TestNewMailerValidation(t *testing.T) {
	t.Parallel()

	t.Run("host required", func(t *testing.T) {
		_, err := NewMailer(Config{Port: 587})
		require.Error(t, err)
	})

	t.Run("valid config builds client", func(t *testing.T) {
		m, err := NewMailer(Config{
			Host:    "smtp.example.com",
			Port:    465,
			From:    "noreply@brightpath.example",
			Timeout: time.Second,
		})
		require.NoError(t, err)
		require.NotNil(t, m)
	})
}
