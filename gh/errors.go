package gh

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHeaderValue = errors.New("invalid header value")
	ErrMissingDownloadURL = errors.New("response has no content.download_url")
)

// ClientError reports a client that could not be configured.
type ClientError struct {
	Header string
	Err    error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("building client: %s: %v", e.Header, e.Err)
}

func (e *ClientError) Unwrap() error { return e.Err }

// FileReadError reports a local image that could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read image file %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// UploadError reports a failed PUT. URL is the object URL that was requested
// and Body the raw response, when one was received.
type UploadError struct {
	URL  string
	Body string
	Err  error
}

func (e *UploadError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("commit failed: %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("commit failed: %s: %v: %s", e.URL, e.Err, e.Body)
}

func (e *UploadError) Unwrap() error { return e.Err }
