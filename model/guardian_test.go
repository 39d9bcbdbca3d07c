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
package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionOrder(t *testing.T) {
	assert.True(t, PermPull < PermPush)
	assert.True(t, PermPush < PermAdmin)
	for _, name := range []string{"pull", "push", "admin"} {
		p, err := ParsePermission(name)
		assert.NoError(t, err)
		assert.Equal(t, name, p.String())
	}
	p, err := ParsePermission("write")
	assert.NoError(t, err)
	assert.Equal(t, PermPush, p)
	_, err = ParsePermission("triage")
	assert.Error(t, err)
}

func TestGrantsWithoutAdmin(t *testing.T) {
	repo := Repo{Owner: "acme", Name: "widgets"}
	a := TeamAssignment{Team: "platform"}
	assert.False(t, a.HasAdmin())
	assert.Equal(t, "platform", a.ReadmeTeam())
	assert.Equal(t, []Grant{{Team: "platform", Repo: repo, Permission: PermAdmin}}, a.Grants(repo))
}

func TestGrantsWithAdmin(t *testing.T) {
	repo := Repo{Owner: "acme", Name: "widgets"}
	a := TeamAssignment{Team: "platform", AdminTeam: "platform_Admin"}
	assert.True(t, a.HasAdmin())
	assert.Equal(t, "platform_Admin", a.ReadmeTeam())
	grants := a.Grants(repo)
	assert.Len(t, grants, 2)
	assert.Equal(t, PermPush, grants[0].Permission)
	assert.Equal(t, "platform_Admin", grants[1].Team)
	assert.Equal(t, PermAdmin, grants[1].Permission)
}

func TestSummary(t *testing.T) {
	s := Summary{Repo: Repo{Owner: "acme", Name: "widgets"}}
	s.Add(OpResult{Op: "codeowners", Target: ".github/CODEOWNERS", Err: errors.New("boom")})
	s.Add(OpResult{Op: "readme", Target: "README.md", Detail: "created"})
	assert.Len(t, s.Failed(), 1)
	assert.Error(t, s.Err())
	assert.Contains(t, s.Err().Error(), "codeowners .github/CODEOWNERS: boom")

	out, err := json.Marshal(s.Results)
	assert.NoError(t, err)
	assert.JSONEq(t, `[
		{"op":"codeowners","target":".github/CODEOWNERS","error":"boom"},
		{"op":"readme","target":"README.md","detail":"created"}
	]`, string(out))

	empty := Summary{}
	assert.NoError(t, empty.Err())
}

func TestSettingsAdminSlug(t *testing.T) {
	s := &Settings{AdminSuffix: "_Admin"}
	assert.Equal(t, "infra_Admin", s.AdminTeamSlug("infra"))
}
