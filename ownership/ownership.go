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
// Package ownership decides which team owns a new repository.
package ownership

import (
	"context"
	"net/http"
	"strings"

	"github.com/capitalone/repo-guardian/exterror"
	"github.com/capitalone/repo-guardian/model"
	"github.com/capitalone/repo-guardian/remote"

	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrNoTeam is returned by Resolve when the creator belongs to no team.
var ErrNoTeam = exterror.BadRequest("Team not found for creator")

// TeamOfUser returns the slug of the first team, in listing order, that
// has username as a member. Membership in several teams is logged and
// the first one wins.
func TeamOfUser(c context.Context, r remote.Remote, org, username string) (string, bool, error) {
	log.Infof("Getting team for user: %s in org: %s", username, org)
	teams, err := r.ListTeams(c, org)
	if err != nil {
		return "", false, enumerationError(err, "Listing teams of %s", org)
	}
	var found []string
	for _, team := range teams {
		log.Debugf("Checking team: %s", team)
		members, err := r.GetTeamMembers(c, org, team)
		if err != nil {
			return "", false, enumerationError(err, "Listing members of %s", team)
		}
		for _, m := range members {
			if strings.EqualFold(m, username) {
				log.Debugf("User %s found in team: %s", username, team)
				found = append(found, team)
				break
			}
		}
	}
	switch {
	case len(found) == 0:
		log.Warnf("No team found for user: %s", username)
		return "", false, nil
	case len(found) > 1:
		log.Warnf("User %s found in multiple teams: %v. Using first team: %s", username, found, found[0])
	default:
		log.Infof("User %s found in team: %s", username, found[0])
	}
	return found[0], true, nil
}

// enumerationError reports a failed listing as a server fault whatever
// status GitHub answered with.
func enumerationError(err error, format string, args ...interface{}) error {
	return exterror.Create(http.StatusInternalServerError, pkgerrors.Wrapf(err, format, args...))
}

// AdminTeamFor returns the admin variant of team when it exists. Any
// lookup failure is treated as the team not existing.
func AdminTeamFor(c context.Context, r remote.Remote, org, team, suffix string) (string, bool) {
	slug := team + suffix
	log.Infof("Checking if admin team exists: %s", slug)
	found, err := r.GetTeam(c, org, slug)
	if err != nil {
		log.Infof("Admin team %s not found: %s", slug, err)
		return "", false
	}
	log.Infof("Admin team found: %s", found)
	return found, true
}

// Resolve builds the team assignment for a repository created by creator.
func Resolve(c context.Context, r remote.Remote, s *model.Settings, creator string) (model.TeamAssignment, error) {
	team, ok, err := TeamOfUser(c, r, s.Org, creator)
	if err != nil {
		return model.TeamAssignment{}, err
	}
	if !ok {
		return model.TeamAssignment{}, ErrNoTeam
	}
	assignment := model.TeamAssignment{Team: team}
	if admin, ok := AdminTeamFor(c, r, s.Org, team, s.AdminSuffix); ok {
		assignment.AdminTeam = admin
	}
	return assignment, nil
}
