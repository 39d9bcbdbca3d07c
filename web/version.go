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
package web

import (
	"net/http"

	"github.com/capitalone/repo-guardian/version"

	"github.com/gin-gonic/gin"
)

// Version returns a response body
// with the version number of the service.
func Version(c *gin.Context) {
	c.String(http.StatusOK, version.Version)
}

// Health reports that the process is serving requests.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
