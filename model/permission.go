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

// Permission is a repository access level. Values are ordered:
// PermPull < PermPush < PermAdmin.
type Permission int

const (
	PermNone Permission = iota
	PermPull
	PermPush
	PermAdmin
)

var permNames = map[Permission]string{
	PermPull:  "pull",
	PermPush:  "push",
	PermAdmin: "admin",
}

// String returns the name GitHub uses for the permission.
func (p Permission) String() string {
	if s, ok := permNames[p]; ok {
		return s
	}
	return "none"
}

// ParsePermission accepts the GitHub names and the read/write aliases.
func ParsePermission(s string) (Permission, error) {
	switch s {
	case "pull", "read":
		return PermPull, nil
	case "push", "write":
		return PermPush, nil
	case "admin":
		return PermAdmin, nil
	}
	return PermNone, fmt.Errorf("Unknown permission %q", s)
}

func (p Permission) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Grant gives a team a permission on a repository.
type Grant struct {
	Team       string     `json:"team"`
	Repo       Repo       `json:"-"`
	Permission Permission `json:"permission"`
}
