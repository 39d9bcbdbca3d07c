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
// Package mock provides testify mocks of the remote interfaces.
package mock

import (
	"context"

	"github.com/capitalone/repo-guardian/model"
	"github.com/capitalone/repo-guardian/remote"

	"github.com/stretchr/testify/mock"
)

type Remote struct {
	mock.Mock
}

func (m *Remote) ListTeams(c context.Context, org string) ([]string, error) {
	args := m.Called(org)
	teams, _ := args.Get(0).([]string)
	return teams, args.Error(1)
}

func (m *Remote) GetTeamMembers(c context.Context, org, team string) ([]string, error) {
	args := m.Called(org, team)
	members, _ := args.Get(0).([]string)
	return members, args.Error(1)
}

func (m *Remote) GetTeam(c context.Context, org, team string) (string, error) {
	args := m.Called(org, team)
	return args.String(0), args.Error(1)
}

func (m *Remote) GetFile(c context.Context, r model.Repo, path string) (*model.File, error) {
	args := m.Called(r, path)
	f, _ := args.Get(0).(*model.File)
	return f, args.Error(1)
}

func (m *Remote) CreateFile(c context.Context, r model.Repo, path string, content []byte, msg string) error {
	args := m.Called(r, path, string(content), msg)
	return args.Error(0)
}

func (m *Remote) UpdateFile(c context.Context, r model.Repo, path string, content []byte, msg, sha string) error {
	args := m.Called(r, path, string(content), msg, sha)
	return args.Error(0)
}

func (m *Remote) SetTeamPermission(c context.Context, org, team string, r model.Repo, perm model.Permission) error {
	args := m.Called(org, team, r, perm)
	return args.Error(0)
}

func (m *Remote) RemoveCollaborator(c context.Context, r model.Repo, login string) error {
	args := m.Called(r, login)
	return args.Error(0)
}

// Connector hands out the same Remote for every installation and
// counts how often it was asked.
type Connector struct {
	mock.Mock
	Remote *Remote
}

func (m *Connector) Installation(c context.Context, id int64) (remote.Remote, error) {
	args := m.Called(id)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return m.Remote, nil
}
