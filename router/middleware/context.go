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
package middleware

import (
	"github.com/capitalone/repo-guardian/model"
	"github.com/capitalone/repo-guardian/remote"

	"github.com/gin-gonic/gin"
)

// Settings attaches the process settings to every request.
func Settings(s *model.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		model.SettingsToContext(c, s)
		c.Next()
	}
}

// Remote attaches the GitHub App connector to every request.
func Remote(conn remote.Connector) gin.HandlerFunc {
	return func(c *gin.Context) {
		remote.ToContext(c, conn)
		c.Next()
	}
}
