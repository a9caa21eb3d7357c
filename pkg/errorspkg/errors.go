// Package errorspkg holds errors shared by every layer of the API.
package errorspkg

import "errors"

// ErrInternal is returned in place of storage and infrastructure failures,
// so their details never reach API clients.
var ErrInternal = errors.New("internal")
