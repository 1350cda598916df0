package blob

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeSigner struct {
	calls int
	err   error
}

func (f *fakeSigner) SignGetURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("https://bucket.example.com/%s?X-Amz-Signature=abc&X-Amz-Expires=%d", key, int(ttl.Seconds())), nil
}

func TestResolverResolve(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("absolute url returned verbatim unsigned", func(t *testing.T) {
		signer := &fakeSigner{}
		r := NewResolver("cv-bucket", "", signer, 0)

		link, err := r.Resolve(ctx, "https://legacy.example.com/cv/old.pdf")
		require.NoError(t, err)
		require.True(t, link.Exists)
		require.False(t, link.Signed)
		require.Equal(t, "https://legacy.example.com/cv/old.pdf", link.URL)
		require.Zero(t, signer.calls)
	})

	t.Run("no bucket configured reports not exists", func(t *testing.T) {
		r := NewResolver("", "", &fakeSigner{}, 0)

		link, err := r.Resolve(ctx, "cv/42/2026/01/resume.pdf")
		require.NoError(t, err)
		require.False(t, link.Exists)
		require.Empty(t, link.URL)
	})

	t.Run("public base url concatenated with encoded key", func(t *testing.T) {
		signer := &fakeSigner{}
		r := NewResolver("cv-bucket", "https://cdn.example.com/", signer, 0)

		link, err := r.Resolve(ctx, "cv/42/my resume.pdf")
		require.NoError(t, err)
		require.True(t, link.Exists)
		require.False(t, link.Signed)
		require.Equal(t, "https://cdn.example.com/cv/42/my%20resume.pdf", link.URL)
		require.Zero(t, signer.calls)
	})

	t.Run("private bucket uses signer and flags signed", func(t *testing.T) {
		signer := &fakeSigner{}
		r := NewResolver("cv-bucket", "", signer, 10*time.Minute)

		link, err := r.Resolve(ctx, "cv/42/resume.pdf")
		require.NoError(t, err)
		require.True(t, link.Exists)
		require.True(t, link.Signed)
		require.Contains(t, link.URL, "X-Amz-Signature")
		require.Contains(t, link.URL, "X-Amz-Expires=600")
		require.Equal(t, 1, signer.calls)
	})

	t.Run("signer failure propagates", func(t *testing.T) {
		signer := &fakeSigner{err: fmt.Errorf("presign: connection refused")}
		r := NewResolver("cv-bucket", "", signer, 0)

		_, err := r.Resolve(ctx, "cv/42/resume.pdf")
		require.Error(t, err)
	})
}
