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

// TeamAssignment records the team owning a repository and, when it
// exists, the admin variant of that team.
type TeamAssignment struct {
	Team      string `json:"team"`
	AdminTeam string `json:"admin_team,omitempty"`
}

// HasAdmin reports whether an admin variant of the team was found.
func (t TeamAssignment) HasAdmin() bool {
	return t.AdminTeam != ""
}

// ReadmeTeam is the team named in the README ownership section.
func (t TeamAssignment) ReadmeTeam() string {
	if t.HasAdmin() {
		return t.AdminTeam
	}
	return t.Team
}

// Grants lists the team permissions applied to repo. Exactly one
// team receives admin.
func (t TeamAssignment) Grants(repo Repo) []Grant {
	if t.HasAdmin() {
		return []Grant{
			{Team: t.Team, Repo: repo, Permission: PermPush},
			{Team: t.AdminTeam, Repo: repo, Permission: PermAdmin},
		}
	}
	return []Grant{
		{Team: t.Team, Repo: repo, Permission: PermAdmin},
	}
}
