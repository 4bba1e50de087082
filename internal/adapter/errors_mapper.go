package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch code := resp.StatusCode(); {
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case code == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case code >= http.StatusInternalServerError:
		if body == "" {
			body = http.StatusText(code)
		}
		return fmt.Errorf("%w: http %d: %s", ErrRemoteUnavailable, code, body)
	default:
		if body == "" {
			body = http.StatusText(code)
		}
		return fmt.Errorf("http %d: %s", code, body)
	}
}

// mapStoreError translates database failures of the direct Postgres adapter
// into adapter errors.
func mapStoreError(db store.ErrorClassificator, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrRecordNotFound) {
		return ErrNotFound
	}

	switch db.Classify(err) {
	case store.Retryable, store.Busy:
		return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	case store.Schema:
		return fmt.Errorf("%w: %w", ErrRemoteSchema, err)
	}
	return err
}
