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

import "fmt"

// Repo identifies a repository governed by the service.
type Repo struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// Slug returns the owner/name form of the repository.
func (r Repo) Slug() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// File is the current revision of a file in a repository.
type File struct {
	Path string `json:"path"`
	SHA  string `json:"sha"`
}
