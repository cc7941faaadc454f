package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

const maxErrorBody = 1 << 20

// DecodeJSON closes the response and decodes a 2xx body into dest. Non-2xx responses become an
// *errors.Error carrying the backend's message verbatim.
func DecodeJSON(resp *http.Response, dest interface{}) error {
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if dest == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if err == io.EOF {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("invalid backend response from %s", requestPath(resp)))
	}
	return nil
}

// ReadBody closes the response and returns the raw 2xx body, e.g. a CSV export.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to read backend response")
	}
	return body, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return appErrors.FromUpstream(resp.StatusCode, body)
}

func requestPath(resp *http.Response) string {
	if resp.Request == nil || resp.Request.URL == nil {
		return "backend"
	}
	return resp.Request.URL.Path
}
