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
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/capitalone/repo-guardian/exterror"
	"github.com/capitalone/repo-guardian/model"
	"github.com/capitalone/repo-guardian/signature"
	"github.com/capitalone/repo-guardian/usage"

	"github.com/google/go-github/v42/github"
	version "github.com/hashicorp/go-version"
	"github.com/mattn/go-jsonpointer"
	log "github.com/sirupsen/logrus"
)

const (
	repoEvent     = "repository"
	createdAction = "created"

	enterpriseHeader = "X-GitHub-Enterprise-Version"
)

// Team slug endpoints first shipped in GitHub Enterprise Server 2.21.
var minEnterprise = version.Must(version.NewVersion("2.21.0"))

var requiredFields = []string{
	"/repository/name",
	"/sender/login",
	"/installation/id",
}

// createHook authenticates the request and decodes it into a Hook. A
// nil Hook with a nil error means the delivery is acknowledged and
// ignored. The signature is checked before anything else is read.
func createHook(c context.Context, r *http.Request, s *model.Settings) (Hook, string, context.Context, error) {

	// For server requests the Request Body is always non-nil
	// but will return EOF immediately when no body is present.
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return nil, "", c, exterror.Create(http.StatusInternalServerError, err)
	}

	log.Info("Verifying webhook signature.")
	if !signature.Verify(body, s.WebhookSecret, r.Header.Get(signature.Header)) {
		log.Info("Signature verification result: false")
		return nil, "", c, exterror.Unauthorized("Invalid signature")
	}

	event := github.WebHookType(r)
	log.Infof("Received event: %s", event)
	usage.RecordIncomingWebHook(event)
	checkEnterpriseVersion(r.Header.Get(enterpriseHeader))

	var hook Hook
	switch event {
	case repoEvent:
		hook, err = createRepoHook(body, s)
	}
	if hook != nil {
		hook.SetEvent(event)
	}
	c2 := usage.AddEventToContext(c, event)
	return hook, event, c2, err
}

func checkEnterpriseVersion(header string) {
	if header == "" {
		return
	}
	v, err := version.NewVersion(header)
	if err != nil {
		log.Debugf("Unparseable %s header %q: %s", enterpriseHeader, header, err)
		return
	}
	if v.LessThan(minEnterprise) {
		log.Warnf("GitHub Enterprise %s predates %s; team lookups by slug may fail", v, minEnterprise)
	}
}

func createError(msg string, body []byte, e error) error {
	log.Debugf("Logging request body on error: %s", body)
	e = exterror.Create(http.StatusInternalServerError, e)
	return exterror.Append(e, msg)
}

func createRepoHook(body []byte, s *model.Settings) (Hook, error) {

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		log.Warnf("Ignoring repository hook with unparseable body: %s", err)
		return nil, nil
	}
	action, _ := jsonpointer.Get(raw, "/action")
	if action != createdAction {
		log.Infof("Ignoring repository action %v", action)
		return nil, nil
	}
	var missing []string
	for _, p := range requiredFields {
		if v, err := jsonpointer.Get(raw, p); err != nil || v == nil {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		err := fmt.Errorf("Missing required fields %s", strings.Join(missing, ", "))
		return nil, createError("Getting repository hook", body, err)
	}

	data := github.RepositoryEvent{}
	err := json.NewDecoder(bytes.NewReader(body)).Decode(&data)
	if err != nil {
		return nil, createError("Getting repository hook", body, err)
	}

	log.Debug(data)

	owner := data.Repo.GetOwner().GetLogin()
	if owner != "" && !strings.EqualFold(owner, s.Org) {
		log.Warnf("Repository %s belongs to %s, governing it as %s/%s",
			data.Repo.GetFullName(), owner, s.Org, data.Repo.GetName())
	}

	hook := &RepoHook{
		HookCommon: HookCommon{
			Action: data.GetAction(),
		},
		RepoEvent: model.RepoEvent{
			Event:  repoEvent,
			Action: data.GetAction(),
			Repo: model.Repo{
				Owner: s.Org,
				Name:  data.Repo.GetName(),
			},
			Creator:        data.Sender.GetLogin(),
			InstallationID: data.Installation.GetID(),
		},
	}
	return hook, nil
}
