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
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/capitalone/repo-guardian/exterror"
	"github.com/capitalone/repo-guardian/model"

	"github.com/google/go-github/v42/github"
	pkgerrors "github.com/pkg/errors"
)

const (
	DefaultURL = "https://github.com"
	DefaultAPI = "https://api.github.com/"
)

func createErrorFallback(resp *github.Response, err error, fallback int) error {
	if resp != nil {
		return exterror.Create(resp.StatusCode, err)
	}
	return exterror.Create(fallback, err)
}

func createError(resp *github.Response, err error) error {
	return createErrorFallback(resp, err, http.StatusInternalServerError)
}

// APIFromURL returns the REST endpoint for a GitHub or GitHub
// Enterprise web url.
func APIFromURL(rawurl string) string {
	rawurl = strings.TrimSuffix(rawurl, "/")
	if rawurl == "" || rawurl == DefaultURL {
		return DefaultAPI
	}
	return rawurl + "/api/v3/"
}

// Github is a client authenticated as one installation of the app.
type Github struct {
	API          string
	Token        string
	Installation int64
}

func (g *Github) ListTeams(ctx context.Context, org string) ([]string, error) {
	client := setupClient(ctx, g)
	teams, err := getTeams(ctx, client, org)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(teams))
	for _, t := range teams {
		slugs = append(slugs, t.GetSlug())
	}
	return slugs, nil
}

func getTeams(ctx context.Context, client *github.Client, org string) ([]*github.Team, error) {
	var teams []*github.Team
	resp, err := buildCompleteList(func(opts *github.ListOptions) (*github.Response, error) {
		newTeams, response, err := client.Teams.ListTeams(ctx, org, opts)
		teams = append(teams, newTeams...)
		return response, err
	})
	if err != nil {
		err = fmt.Errorf("Accessing teams for organization %s. %s", org, err)
		return nil, createError(resp, err)
	}
	return teams, nil
}

func (g *Github) GetTeamMembers(ctx context.Context, org, team string) ([]string, error) {
	client := setupClient(ctx, g)
	return getTeamMembers(ctx, client, org, team)
}

func getTeamMembers(ctx context.Context, client *github.Client, org, team string) ([]string, error) {
	topts := github.TeamListTeamMembersOptions{}
	var teammates []*github.User
	resp, err := buildCompleteList(func(opts *github.ListOptions) (*github.Response, error) {
		topts.ListOptions = *opts
		newTmates, resp2, err2 := client.Teams.ListTeamMembersBySlug(ctx, org, team, &topts)
		teammates = append(teammates, newTmates...)
		return resp2, err2
	})
	if err != nil {
		err = fmt.Errorf("Fetching team %s members for organization %s. %s", team, org, err)
		return nil, createError(resp, err)
	}
	names := make([]string, 0, len(teammates))
	for _, u := range teammates {
		names = append(names, u.GetLogin())
	}
	return names, nil
}

func (g *Github) GetTeam(ctx context.Context, org, team string) (string, error) {
	client := setupClient(ctx, g)
	t, resp, err := client.Teams.GetTeamBySlug(ctx, org, team)
	if err != nil {
		err = fmt.Errorf("Fetching team %s for organization %s. %s", team, org, err)
		return "", createError(resp, err)
	}
	return t.GetSlug(), nil
}

func (g *Github) GetFile(ctx context.Context, r model.Repo, path string) (*model.File, error) {
	client := setupClient(ctx, g)
	content, _, resp, err := client.Repositories.GetContents(ctx, r.Owner, r.Name, path, nil)
	if err != nil {
		err = fmt.Errorf("Fetching %s from %s. %s", path, r.Slug(), err)
		return nil, createError(resp, err)
	}
	if content == nil {
		err = fmt.Errorf("Fetching %s from %s. Path is a directory", path, r.Slug())
		return nil, exterror.Create(http.StatusConflict, err)
	}
	return &model.File{
		Path: content.GetPath(),
		SHA:  content.GetSHA(),
	}, nil
}

func (g *Github) CreateFile(ctx context.Context, r model.Repo, path string, content []byte, msg string) error {
	client := setupClient(ctx, g)
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(msg),
		Content: content,
	}
	_, resp, err := client.Repositories.CreateFile(ctx, r.Owner, r.Name, path, opts)
	if err != nil {
		err = fmt.Errorf("Creating %s in %s. %s", path, r.Slug(), err)
		return createError(resp, err)
	}
	return nil
}

func (g *Github) UpdateFile(ctx context.Context, r model.Repo, path string, content []byte, msg, sha string) error {
	client := setupClient(ctx, g)
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(msg),
		Content: content,
		SHA:     github.String(sha),
	}
	_, resp, err := client.Repositories.UpdateFile(ctx, r.Owner, r.Name, path, opts)
	if err != nil {
		err = fmt.Errorf("Updating %s in %s. %s", path, r.Slug(), err)
		return createError(resp, err)
	}
	return nil
}

func (g *Github) SetTeamPermission(ctx context.Context, org, team string, r model.Repo, perm model.Permission) error {
	if perm == model.PermNone {
		return pkgerrors.Errorf("Refusing to grant no permission to team %s", team)
	}
	client := setupClient(ctx, g)
	opts := &github.TeamAddTeamRepoOptions{Permission: perm.String()}
	resp, err := client.Teams.AddTeamRepoBySlug(ctx, org, team, r.Owner, r.Name, opts)
	if err != nil {
		err = fmt.Errorf("Granting %s on %s to team %s. %s", perm, r.Slug(), team, err)
		return createError(resp, err)
	}
	return nil
}

func (g *Github) RemoveCollaborator(ctx context.Context, r model.Repo, login string) error {
	client := setupClient(ctx, g)
	resp, err := client.Repositories.RemoveCollaborator(ctx, r.Owner, r.Name, login)
	if err != nil {
		err = fmt.Errorf("Removing collaborator %s from %s. %s", login, r.Slug(), err)
		return createError(resp, err)
	}
	return nil
}
