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
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/capitalone/repo-guardian/exterror"
	"github.com/capitalone/repo-guardian/model"
	"github.com/capitalone/repo-guardian/provision"
	"github.com/capitalone/repo-guardian/remote/mock"
	"github.com/capitalone/repo-guardian/router/middleware"
	"github.com/capitalone/repo-guardian/signature"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "It's a Secret to Everybody"

var (
	testSettings = &model.Settings{
		Org:            "acme",
		WebhookSecret:  testSecret,
		AdminSuffix:    "_Admin",
		CodeownersPath: ".github/CODEOWNERS",
		ReadmePath:     "README.md",
	}
	testRepo    = model.Repo{Owner: "acme", Name: "widgets"}
	notFoundErr = exterror.Create(http.StatusNotFound, errors.New("Not Found"))
)

const createdPayload = `{
  "action": "created",
  "repository": {"name": "widgets", "full_name": "acme/widgets", "owner": {"login": "acme"}},
  "sender": {"login": "octocat"},
  "installation": {"id": 42}
}`

func init() {
	gin.SetMode(gin.TestMode)
	logrus.SetOutput(ioutil.Discard)
}

func newEngine(conn *mock.Connector) *gin.Engine {
	e := gin.New()
	e.Use(middleware.Settings(testSettings))
	e.Use(middleware.Remote(conn))
	e.Use(middleware.ExtError())
	e.POST("/hook", ProcessHook)
	return e
}

func newConnector() (*mock.Connector, *mock.Remote) {
	r := &mock.Remote{}
	return &mock.Connector{Remote: r}, r
}

func deliver(e http.Handler, event, body, sig string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/hook", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", event)
	if sig != "" {
		req.Header.Set(signature.Header, sig)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func signed(body string) string {
	return signature.Sign([]byte(body), testSecret)
}

func TestHookRejectsBadSignature(t *testing.T) {
	cases := map[string]string{
		"missing":   "",
		"wrong":     signature.Sign([]byte(createdPayload), "not the secret"),
		"no prefix": signed(createdPayload)[len(signature.Prefix):],
		"tampered":  signed(createdPayload + " "),
	}
	for name, sig := range cases {
		t.Run(name, func(t *testing.T) {
			conn, r := newConnector()
			w := deliver(newEngine(conn), "repository", createdPayload, sig)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Invalid signature", w.Body.String())
			conn.AssertNotCalled(t, "Installation", tmock.Anything)
			assert.Empty(t, r.Calls)
		})
	}
}

func TestHookIgnoresOtherDeliveries(t *testing.T) {
	deleted := `{"action": "deleted", "repository": {"name": "widgets"}, "sender": {"login": "octocat"}, "installation": {"id": 42}}`
	cases := []struct {
		name, event, body string
	}{
		{"push event", "push", `{"ref": "refs/heads/main"}`},
		{"ping event", "ping", `{"zen": "Keep it logically awesome."}`},
		{"deleted action", "repository", deleted},
		{"invalid json", "repository", `{"action": "created",`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn, r := newConnector()
			w := deliver(newEngine(conn), tc.event, tc.body, signed(tc.body))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "Ignored", w.Body.String())
			conn.AssertNotCalled(t, "Installation", tmock.Anything)
			assert.Empty(t, r.Calls)
		})
	}
}

func TestHookMissingFields(t *testing.T) {
	body := `{"action": "created", "repository": {"name": "widgets"}, "installation": {"id": 42}}`
	conn, _ := newConnector()
	w := deliver(newEngine(conn), "repository", body, signed(body))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	conn.AssertNotCalled(t, "Installation", tmock.Anything)
}

func TestHookInstallationFailure(t *testing.T) {
	conn, r := newConnector()
	conn.On("Installation", int64(42)).Return(exterror.Create(http.StatusInternalServerError, errors.New("bad credentials")))
	w := deliver(newEngine(conn), "repository", createdPayload, signed(createdPayload))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), w.Body.String())
	assert.Empty(t, r.Calls)
}

func TestHookCreatorWithoutTeam(t *testing.T) {
	conn, r := newConnector()
	conn.On("Installation", int64(42)).Return(nil)
	r.On("ListTeams", "acme").Return([]string{"alpha"}, nil)
	r.On("GetTeamMembers", "acme", "alpha").Return([]string{"hubot"}, nil)

	w := deliver(newEngine(conn), "repository", createdPayload, signed(createdPayload))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Team not found for creator", w.Body.String())
	r.AssertNotCalled(t, "CreateFile", tmock.Anything, tmock.Anything, tmock.Anything, tmock.Anything)
	r.AssertNotCalled(t, "UpdateFile", tmock.Anything, tmock.Anything, tmock.Anything, tmock.Anything, tmock.Anything)
	r.AssertNotCalled(t, "SetTeamPermission", tmock.Anything, tmock.Anything, tmock.Anything, tmock.Anything)
	r.AssertNotCalled(t, "RemoveCollaborator", tmock.Anything, tmock.Anything)
}

func TestHookProcessesCreatedRepository(t *testing.T) {
	conn, r := newConnector()
	conn.On("Installation", int64(42)).Return(nil)
	r.On("ListTeams", "acme").Return([]string{"alpha", "beta"}, nil)
	r.On("GetTeamMembers", "acme", "alpha").Return([]string{"hubot"}, nil)
	r.On("GetTeamMembers", "acme", "beta").Return([]string{"OctoCat"}, nil)
	r.On("GetTeam", "acme", "beta_Admin").Return("beta_admin", nil)

	r.On("GetFile", testRepo, ".github/CODEOWNERS").Return(nil, notFoundErr)
	r.On("CreateFile", testRepo, ".github/CODEOWNERS", "# CODEOWNERS\n*\t@acme/beta\n",
		"Create CODEOWNERS for repo creator's team").Return(nil)
	r.On("GetFile", testRepo, "README.md").Return(&model.File{Path: "README.md", SHA: "3d21ec5"}, nil)
	r.On("UpdateFile", testRepo, "README.md", provision.ReadmeContent("beta_admin"),
		tmock.AnythingOfType("string"), "3d21ec5").Return(nil)
	r.On("SetTeamPermission", "acme", "beta", testRepo, model.PermPush).Return(nil)
	r.On("SetTeamPermission", "acme", "beta_admin", testRepo, model.PermAdmin).Return(nil)
	r.On("RemoveCollaborator", testRepo, "octocat").Return(notFoundErr)

	w := deliver(newEngine(conn), "repository", createdPayload, signed(createdPayload))
	require.Equal(t, http.StatusOK, w.Code)
	r.AssertExpectations(t)
	conn.AssertNumberOfCalls(t, "Installation", 1)

	out := RepoOutput{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Processed", out.Status)
	assert.Equal(t, "acme/widgets", out.Repo)
	assert.Equal(t, model.TeamAssignment{Team: "beta", AdminTeam: "beta_admin"}, out.Assignment)
	require.Len(t, out.Results, 5)
	assert.Equal(t, "created", out.Results[0].Detail)
	assert.Equal(t, "updated", out.Results[1].Detail)
	assert.Equal(t, "no direct grant", out.Results[4].Detail)
}

func TestHookFailuresStillProcessed(t *testing.T) {
	conn, r := newConnector()
	conn.On("Installation", int64(42)).Return(nil)
	r.On("ListTeams", "acme").Return([]string{"alpha"}, nil)
	r.On("GetTeamMembers", "acme", "alpha").Return([]string{"octocat"}, nil)
	r.On("GetTeam", "acme", "alpha_Admin").Return("", notFoundErr)
	r.On("GetFile", testRepo, tmock.Anything).Return(nil, errors.New("connection reset"))
	r.On("SetTeamPermission", "acme", "alpha", testRepo, model.PermAdmin).Return(errors.New("forbidden"))
	r.On("RemoveCollaborator", testRepo, "octocat").Return(nil)

	w := deliver(newEngine(conn), "repository", createdPayload, signed(createdPayload))
	assert.Equal(t, http.StatusOK, w.Code)
	r.AssertNumberOfCalls(t, "GetFile", 2)
	r.AssertNotCalled(t, "CreateFile", tmock.Anything, tmock.Anything, tmock.Anything, tmock.Anything)
	r.AssertCalled(t, "RemoveCollaborator", testRepo, "octocat")

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	results := out["results"].([]interface{})
	require.Len(t, results, 4)
	grant := results[2].(map[string]interface{})
	assert.Equal(t, "grant", grant["op"])
	assert.Equal(t, "forbidden", grant["error"])
}

func TestCheckEnterpriseVersion(t *testing.T) {
	assert.NotPanics(t, func() {
		checkEnterpriseVersion("")
		checkEnterpriseVersion("2.20.5")
		checkEnterpriseVersion("3.9.0")
		checkEnterpriseVersion("not-a-version")
	})
}
