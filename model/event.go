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

// RepoEvent is the part of a repository webhook the service acts on.
// It lives for the duration of a single request.
type RepoEvent struct {
	Event          string `json:"event"`
	Action         string `json:"action"`
	Repo           Repo   `json:"repo"`
	Creator        string `json:"creator"`
	InstallationID int64  `json:"installation_id"`
}
