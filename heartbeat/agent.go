// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package heartbeat

import (
	"github.com/hashicorp/consul/api"
)

// TTLUpdater is the low-level behavior of anything that can actually
// update the status of a TTL check. The *api.Agent type implements this interface.
type TTLUpdater interface {
	UpdateTTLOpts(checkID, output, status string, opts *api.QueryOptions) error
}
