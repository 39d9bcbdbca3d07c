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

import "context"

const settingsKey = "settings"

// Settings is the process configuration assembled once at start-up
// and handed to the request handlers. It is never modified afterwards.
type Settings struct {
	// Org is the organization whose repositories are governed.
	Org string
	// WebhookSecret authenticates incoming webhooks.
	WebhookSecret string
	// AdminSuffix names the admin variant of a team, e.g. "_Admin".
	AdminSuffix string
	// CodeownersPath and ReadmePath are the files written into new repositories.
	CodeownersPath string
	ReadmePath     string
}

// AdminTeamSlug returns the slug of the admin variant of team.
func (s *Settings) AdminTeamSlug(team string) string {
	return team + s.AdminSuffix
}

// Setter defines a context that enables setting values.
type Setter interface {
	Set(string, interface{})
}

// SettingsFromContext returns the Settings associated with this context.
func SettingsFromContext(c context.Context) *Settings {
	return c.Value(settingsKey).(*Settings)
}

// SettingsToContext adds the Settings to this context.
func SettingsToContext(c Setter, s *Settings) {
	c.Set(settingsKey, s)
}
