package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pic-to-github/ctxlog"
	"pic-to-github/helpers"
	"pic-to-github/model"
)

// Uploader creates one content entry per image in the configured repository.
type Uploader struct {
	Client    *http.Client
	BaseURL   string
	Committer model.Committer
	Proxy     string
	NewID     func() string
}

// NewUploader returns an Uploader targeting repo on api.github.com. proxy is
// prepended verbatim to every download URL it returns.
func NewUploader(client *http.Client, repo model.Repo, committer model.Committer, proxy string) *Uploader {
	return &Uploader{
		Client:    client,
		BaseURL:   RepoURL(repo),
		Committer: committer,
		Proxy:     proxy,
		NewID:     NewID,
	}
}

// Upload PUTs the image at imgPath under a fresh name and returns its
// download URL, prefixed with the proxy.
func (u *Uploader) Upload(ctx context.Context, imgPath string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	content, size, err := helpers.EncodeFile(imgPath)
	if err != nil {
		return "", &FileReadError{Path: imgPath, Err: err}
	}

	objectURL := ObjectURL(u.BaseURL, u.NewID(), Suffix(imgPath))
	logger.Debug("Uploading image", "path", imgPath, "url", objectURL, "size", helpers.FormatBytes(size))

	body, err := json.Marshal(model.UploadRequest{
		Message:   model.CommitMessage,
		Committer: u.Committer,
		Content:   content,
	})
	if err != nil {
		return "", &UploadError{URL: objectURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, objectURL, bytes.NewReader(body))
	if err != nil {
		return "", &UploadError{URL: objectURL, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", &UploadError{URL: objectURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UploadError{URL: objectURL, Err: err}
	}
	logger.Debug("Upload response", "url", objectURL, "status", resp.StatusCode)

	downloadURL, err := extractDownloadURL(raw)
	if err != nil {
		return "", &UploadError{URL: objectURL, Body: string(raw), Err: err}
	}

	return u.Proxy + downloadURL, nil
}

// extractDownloadURL reads content.download_url from a Contents API response.
func extractDownloadURL(raw []byte) (string, error) {
	var rsp map[string]any
	if err := json.Unmarshal(raw, &rsp); err != nil {
		return "", fmt.Errorf("error decoding response: %w", err)
	}

	content, ok := rsp["content"].(map[string]any)
	if !ok {
		return "", ErrMissingDownloadURL
	}
	downloadURL, ok := content["download_url"].(string)
	if !ok {
		return "", ErrMissingDownloadURL
	}
	return downloadURL, nil
}
