// Package blob resolves stored CV artifact keys into retrievable URLs and
// handles uploads to object storage.
package blob

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// DefaultSignTTL is how long a signed URL stays valid unless configured
// otherwise.
const DefaultSignTTL = 15 * time.Minute

// Link is the result of resolving a storage key.
type Link struct {
	Exists bool   `json:"exists"`
	URL    string `json:"url,omitempty"`
	Signed bool   `json:"isSigned"`
}

// Signer produces a time-limited signed GET URL for a stored object.
type Signer interface {
	SignGetURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Resolver decides how a stored key becomes a viewable URL. The ordering
// lets deployments choose between a public bucket (cheap, cacheable) and a
// private bucket with signed URLs without changing call sites.
type Resolver struct {
	bucket        string
	publicBaseURL string
	signer        Signer
	signTTL       time.Duration
}

func NewResolver(bucket, publicBaseURL string, signer Signer, signTTL time.Duration) *Resolver {
	if signTTL <= 0 {
		signTTL = DefaultSignTTL
	}
	return &Resolver{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		signer:        signer,
		signTTL:       signTTL,
	}
}

// Resolve turns a stored key into a Link.
//
//  1. A key that is already an absolute http(s) URL is returned verbatim,
//     unsigned.
//  2. With no bucket configured the key cannot exist; report not-exists
//     rather than resolving a bogus key.
//  3. With a public base URL configured, concatenate it with the
//     percent-encoded key path, unsigned.
//  4. Otherwise request a signed URL from the object store.
func (r *Resolver) Resolve(ctx context.Context, key string) (Link, error) {
	if isAbsoluteURL(key) {
		return Link{Exists: true, URL: key}, nil
	}

	if r.bucket == "" {
		return Link{}, nil
	}

	if r.publicBaseURL != "" {
		return Link{Exists: true, URL: r.publicBaseURL + "/" + encodeKeyPath(key)}, nil
	}

	signed, err := r.signer.SignGetURL(ctx, key, r.signTTL)
	if err != nil {
		return Link{}, err
	}
	return Link{Exists: true, URL: signed, Signed: true}, nil
}

func isAbsoluteURL(key string) bool {
	u, err := url.Parse(key)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// encodeKeyPath percent-encodes each path segment of a storage key while
// keeping the segment separators.
func encodeKeyPath(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
