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
	"context"

	"github.com/capitalone/repo-guardian/logstats"
	"github.com/capitalone/repo-guardian/model"
	"github.com/capitalone/repo-guardian/ownership"
	"github.com/capitalone/repo-guardian/provision"
	"github.com/capitalone/repo-guardian/remote"

	log "github.com/sirupsen/logrus"
)

func (hook *RepoHook) Process(c context.Context, conn remote.Connector, s *model.Settings) (interface{}, error) {
	return doRepoHook(c, conn, s, hook)
}

type RepoOutput struct {
	Status     string               `json:"status"`
	Repo       string               `json:"repo"`
	Assignment model.TeamAssignment `json:"assignment"`
	Results    []model.OpResult     `json:"results"`
}

func doRepoHook(c context.Context, conn remote.Connector, s *model.Settings, hook *RepoHook) (*RepoOutput, error) {
	ev := hook.RepoEvent
	log.Infof("Governing new repository %s created by %s", ev.Repo.Slug(), ev.Creator)

	r, err := conn.Installation(c, ev.InstallationID)
	if err != nil {
		return nil, err
	}

	assignment, err := ownership.Resolve(c, r, s, ev.Creator)
	if err == ownership.ErrNoTeam {
		logstats.RecordOrphan()
	}
	if err != nil {
		return nil, err
	}

	summary := provision.Provision(c, r, s, ev.Repo, assignment, ev.Creator)
	summary.Log()
	if err := summary.Err(); err != nil {
		log.Warnf("Repository %s partially governed. %s", ev.Repo.Slug(), err)
	}
	logstats.RecordRepo(ev.Repo.Slug(), assignment.Team)
	logstats.RecordFailures(len(summary.Failed()))

	return &RepoOutput{
		Status:     processed,
		Repo:       ev.Repo.Slug(),
		Assignment: assignment,
		Results:    summary.Results,
	}, nil
}
