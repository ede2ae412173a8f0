package gh

import (
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/net/http/httpguts"

	"pic-to-github/model"
)

const (
	APIBase    = "https://api.github.com"
	APIVersion = "2022-11-28"
	MediaType  = "application/vnd.github+json"
	UserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:112.0) Gecko/20100101 Firefox/132.0"

	KeepAlive = 10 * time.Second
)

// headerTransport sets the GitHub API headers on every outgoing request.
type headerTransport struct {
	header http.Header
	base   http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for name, values := range t.header {
		if req.Header.Get(name) == "" {
			req.Header[name] = values
		}
	}
	return t.base.RoundTrip(req)
}

// NewClient returns an HTTP client that authenticates every request with token.
// Compressed responses are accepted and decoded transparently by the transport.
func NewClient(token string) (*http.Client, error) {
	header := http.Header{}
	for _, h := range [][2]string{
		{"User-Agent", UserAgent},
		{"Authorization", "token " + token},
		{"Accept", MediaType},
		{"X-GitHub-Api-Version", APIVersion},
	} {
		if !httpguts.ValidHeaderFieldValue(h[1]) {
			return nil, &ClientError{Header: h[0], Err: ErrInvalidHeaderValue}
		}
		header.Set(h[0], h[1])
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: KeepAlive,
	}).DialContext

	return &http.Client{
		Transport: &headerTransport{header: header, base: transport},
	}, nil
}

// RepoURL builds the contents endpoint for repo. The result never ends with a slash.
func RepoURL(repo model.Repo) string {
	return repoURL(APIBase, repo)
}

func repoURL(base string, repo model.Repo) string {
	return strings.TrimRight(
		fmt.Sprintf("%s/repos/%s/%s/contents/%s", base, repo.Owner, repo.Repo, repo.Path),
		"/",
	)
}

// Suffix returns the extension of imgPath including the leading dot, or ""
// when there is none. Hidden files such as ".bashrc" have no extension.
func Suffix(imgPath string) string {
	name := filepath.Base(imgPath)
	if name == ".." {
		return ""
	}
	ext := filepath.Ext(name)
	if ext == name {
		return ""
	}
	return ext
}

// ObjectURL is the address a single image is created at.
func ObjectURL(base, id, suffix string) string {
	return base + "/" + id + suffix
}

// NewID returns a short, collision-resistant name for an uploaded object.
func NewID() string {
	return shortuuid.New()
}
