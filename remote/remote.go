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
package remote

import (
	"context"

	"github.com/capitalone/repo-guardian/model"
	"github.com/capitalone/repo-guardian/remote/github"
)

// Remote is a connection to the hosting platform authenticated as one
// installation of the GitHub App.
type Remote interface {
	// ListTeams gets the slugs of the organization's teams in the order
	// the remote system lists them.
	ListTeams(c context.Context, org string) ([]string, error)

	// GetTeamMembers gets the logins of the members of a team.
	GetTeamMembers(c context.Context, org, team string) ([]string, error)

	// GetTeam looks up a team by slug. A missing team is an error
	// carrying http.StatusNotFound.
	GetTeam(c context.Context, org, team string) (string, error)

	// GetFile gets the current revision of a file. A missing file is an
	// error carrying http.StatusNotFound.
	GetFile(c context.Context, r model.Repo, path string) (*model.File, error)

	// CreateFile commits a new file.
	CreateFile(c context.Context, r model.Repo, path string, content []byte, msg string) error

	// UpdateFile commits new content over the revision identified by sha.
	UpdateFile(c context.Context, r model.Repo, path string, content []byte, msg, sha string) error

	// SetTeamPermission adds the repository to the team with the given permission.
	SetTeamPermission(c context.Context, org, team string, r model.Repo, perm model.Permission) error

	// RemoveCollaborator removes a user's direct access to the repository.
	RemoveCollaborator(c context.Context, r model.Repo, login string) error
}

// Connector exchanges an installation id for an authenticated Remote.
type Connector interface {
	Installation(c context.Context, id int64) (Remote, error)
}

type appConnector struct {
	app *github.App
}

func (a *appConnector) Installation(c context.Context, id int64) (Remote, error) {
	r, err := a.app.Installation(c, id)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Get creates the Connector for the GitHub App.
func Get(app *github.App) Connector {
	return &appConnector{app: app}
}
