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
// Package provision writes ownership metadata into a repository and
// applies the team permissions. Every operation is attempted even when
// an earlier one failed; the outcomes are collected in a model.Summary.
package provision

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/capitalone/repo-guardian/exterror"
	"github.com/capitalone/repo-guardian/model"
	"github.com/capitalone/repo-guardian/remote"
	"github.com/capitalone/repo-guardian/usage"

	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	OpCodeowners         = "codeowners"
	OpReadme             = "readme"
	OpGrant              = "grant"
	OpRemoveCollaborator = "remove-collaborator"
)

const (
	created = "created"
	updated = "updated"
)

func CodeownersContent(org, team string) string {
	return fmt.Sprintf("# CODEOWNERS\n*\t@%s/%s\n", org, team)
}

func ReadmeContent(team string) string {
	return "## 📦 Repository Ownership\n\n" +
		fmt.Sprintf("**Team Responsible:** `%s`  \n", team) +
		"For issues or support, contact this team. Do not contact central platform team."
}

func createMessage(name string) string {
	return fmt.Sprintf("Create %s for repo creator's team", name)
}

func updateMessage(name string) string {
	return fmt.Sprintf("🛡️ Guardian of Repos, First of His Name, "+
		"Defender of Code updated %s for repo creator's team", name)
}

// UpsertFile replaces the file at p, or creates it when the repository
// has no such file. It returns "created" or "updated".
//
// Only a 404 on the read leads to a create; any other read failure is
// returned as is.
func UpsertFile(c context.Context, r remote.Remote, repo model.Repo, p string, content []byte) (string, error) {
	name := path.Base(p)
	f, err := r.GetFile(c, repo, p)
	switch {
	case err == nil:
		if err := r.UpdateFile(c, repo, p, content, updateMessage(name), f.SHA); err != nil {
			return "", err
		}
		log.Infof("%s file updated.", name)
		return updated, nil
	case exterror.StatusOf(err) == http.StatusNotFound:
		log.Debugf("%s not found, creating it: %s", p, err)
		if err := r.CreateFile(c, repo, p, content, createMessage(name)); err != nil {
			return "", err
		}
		log.Infof("%s file created.", name)
		return created, nil
	default:
		return "", pkgerrors.Wrapf(err, "Reading %s before update", p)
	}
}

// WriteCodeowners makes team the owner of every path in the repository.
func WriteCodeowners(c context.Context, r remote.Remote, s *model.Settings, repo model.Repo, team string) model.OpResult {
	log.Infof("Updating CODEOWNERS file for team: %s", team)
	content := CodeownersContent(s.Org, team)
	detail, err := UpsertFile(c, r, repo, s.CodeownersPath, []byte(content))
	return model.OpResult{Op: OpCodeowners, Target: s.CodeownersPath, Err: err, Detail: detail}
}

// WriteReadme replaces the README with the ownership section.
func WriteReadme(c context.Context, r remote.Remote, s *model.Settings, repo model.Repo, team string) model.OpResult {
	log.Infof("Updating %s for team: %s", s.ReadmePath, team)
	detail, err := UpsertFile(c, r, repo, s.ReadmePath, []byte(ReadmeContent(team)))
	return model.OpResult{Op: OpReadme, Target: s.ReadmePath, Err: err, Detail: detail}
}

// AssignPermissions applies the team grants and removes the creator's
// direct access. Each call is independent of the others.
func AssignPermissions(c context.Context, r remote.Remote, org string, repo model.Repo,
	a model.TeamAssignment, creator string) []model.OpResult {

	log.Infof("Assigning permissions for team: %s", a.Team)
	var results []model.OpResult
	for _, grant := range a.Grants(repo) {
		err := r.SetTeamPermission(c, org, grant.Team, repo, grant.Permission)
		if err != nil {
			log.Errorf("Failed to assign %s permissions to team %s: %s", grant.Permission, grant.Team, err)
		} else {
			log.Infof("%s permissions assigned to team: %s", grant.Permission, grant.Team)
		}
		results = append(results, model.OpResult{
			Op:     OpGrant,
			Target: grant.Team,
			Err:    err,
			Detail: grant.Permission.String(),
		})
	}
	if creator != "" {
		results = append(results, removeCreator(c, r, repo, creator))
	}
	return results
}

func removeCreator(c context.Context, r remote.Remote, repo model.Repo, creator string) model.OpResult {
	res := model.OpResult{Op: OpRemoveCollaborator, Target: creator}
	err := r.RemoveCollaborator(c, repo, creator)
	switch {
	case err == nil:
		log.Infof("Removed individual admin permissions from user: %s", creator)
		res.Detail = "removed"
	case exterror.StatusOf(err) == http.StatusNotFound:
		log.Debugf("Could not remove collaborator permissions for %s: %s", creator, err)
		log.Infof("User %s permissions will be managed through team membership only", creator)
		res.Detail = "no direct grant"
	default:
		log.Debugf("Could not remove collaborator permissions for %s: %s", creator, err)
		log.Infof("User %s permissions will be managed through team membership only", creator)
		res.Err = err
	}
	return res
}

// Provision runs every governance operation for a new repository.
func Provision(c context.Context, r remote.Remote, s *model.Settings, repo model.Repo,
	a model.TeamAssignment, creator string) *model.Summary {

	summary := &model.Summary{Repo: repo, Assignment: a}
	summary.Add(WriteCodeowners(c, r, s, repo, a.Team))
	summary.Add(WriteReadme(c, r, s, repo, a.ReadmeTeam()))
	for _, res := range AssignPermissions(c, r, s.Org, repo, a, creator) {
		summary.Add(res)
	}
	for _, res := range summary.Results {
		usage.RecordOperation(res.Op, res.OK())
	}
	return summary
}
