// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company
// SPDX-License-Identifier: Apache-2.0

package openstack

import (
	"fmt"
	"net/http"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/sapcc/go-bits/errext"
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/occi-adapter/internal/backend"
)

// translateError converts errors from Gophercloud into *backend.Error, so
// that the client sees the same status code that OpenStack reported.
//
// Server errors from OpenStack are reported as 502.
func translateError(err error, action string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(action, args...)

	codeErr, ok := errext.As[gophercloud.ErrUnexpectedResponseCode](err)
	if !ok {
		return fmt.Errorf("cannot %s: %w", message, err)
	}

	status := codeErr.Actual
	switch {
	case status == http.StatusNotFound:
		return backend.Errorf(status, "cannot %s: not found", message)
	case status >= 500:
		logg.Error("OpenStack returned %d while trying to %s: %s", status, message, string(codeErr.Body))
		return backend.Errorf(http.StatusBadGateway, "cannot %s: OpenStack returned %d", message, status)
	default:
		return backend.Errorf(status, "cannot %s: %s", message, string(codeErr.Body))
	}
}
