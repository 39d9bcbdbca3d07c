/*

SPDX-Copyright: Copyright (c) Brad Rydzewski, project contributors, Capital One Services, LLC
SPDX-License-Identifier: Apache-2.0
Copyright 2025 Brad Rydzewski, project contributors, Capital One Services, LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and limitations under the License.

*/
package web

import (
	"context"
	"net/http"

	"github.com/capitalone/repo-guardian/exterror"
	"github.com/capitalone/repo-guardian/model"
	"github.com/capitalone/repo-guardian/remote"
	"github.com/capitalone/repo-guardian/usage"

	"github.com/gin-gonic/gin"
)

const (
	processed = "Processed"
	ignored   = "Ignored"
)

type Hook interface {
	Process(c context.Context, conn remote.Connector, s *model.Settings) (interface{}, error)
	SetEvent(event string)
}

type HookCommon struct {
	Event  string
	Action string
}

type RepoHook struct {
	HookCommon
	RepoEvent model.RepoEvent
}

func ProcessHook(c *gin.Context) {
	settings := model.SettingsFromContext(c)
	hook, event, ctx, err := createHook(c.Request.Context(), c.Request, settings)
	if err != nil {
		recordOutcome(event, err)
		c.Error(err)
		return
	}
	if hook == nil {
		usage.RecordOutcome(event, "ignored")
		c.String(http.StatusOK, ignored)
		return
	}
	output, err := hook.Process(ctx, remote.FromContext(c), settings)
	if err != nil {
		recordOutcome(event, err)
		c.Error(err)
		return
	}
	usage.RecordOutcome(event, "processed")
	c.IndentedJSON(http.StatusOK, output)
}

func recordOutcome(event string, err error) {
	switch exterror.Convert(err).Status {
	case http.StatusUnauthorized:
		usage.RecordOutcome(event, "unauthorized")
	case http.StatusBadRequest:
		usage.RecordOutcome(event, "rejected")
	default:
		usage.RecordOutcome(event, "error")
	}
}

func (h *HookCommon) SetEvent(event string) {
	h.Event = event
}
