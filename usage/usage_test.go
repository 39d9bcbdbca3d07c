/*

SPDX-Copyright: Copyright (c) Capital One Services, LLC
SPDX-License-Identifier: Apache-2.0
Copyright 2025 Capital One Services, LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and limitations under the License.

*/
package usage

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEventContext(t *testing.T) {
	c := context.Background()
	assert.Equal(t, "", GetEventFromContext(c))
	c = AddEventToContext(c, "repository")
	assert.Equal(t, "repository", GetEventFromContext(c))
}

func TestStats(t *testing.T) {
	lock.Lock()
	resetStats()
	lock.Unlock()

	RecordIncomingWebHook("repository")
	RecordIncomingWebHook("repository")
	RecordApiRequest("42", "repository", "github.(*TeamsService).ListTeams")

	stats := GetStats()
	assert.Equal(t, 2, stats.HookIn["repository"])
	assert.Equal(t, 1, stats.Installations["42"])
	assert.Equal(t, 1, stats.RemoteReq["github.(*TeamsService).ListTeams"])

	// the copy is detached from the live counters
	stats.HookIn["repository"] = 100
	assert.Equal(t, 2, GetStats().HookIn["repository"])
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(opCounter.WithLabelValues("codeowners", "failed"))
	RecordOperation("codeowners", false)
	after := testutil.ToFloat64(opCounter.WithLabelValues("codeowners", "failed"))
	assert.Equal(t, before+1, after)

	RecordOutcome("ping", "ignored")
	assert.Equal(t, float64(1), testutil.ToFloat64(hookCounter.WithLabelValues("ping", "ignored")))
}
