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
package router

import (
	"net/http"
	"net/http/pprof"
	rpprof "runtime/pprof"
	"time"

	"github.com/capitalone/repo-guardian/model"
	"github.com/capitalone/repo-guardian/remote"
	"github.com/capitalone/repo-guardian/router/middleware"
	"github.com/capitalone/repo-guardian/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Options control the endpoints and logging of the HTTP handler.
type Options struct {
	// Sunlight exposes version, metrics and profiling endpoints.
	Sunlight bool
	// UaList is a colon separated list of user agents not to log.
	UaList string
}

// Load creates a new HTTP handler
func Load(s *model.Settings, conn remote.Connector, opts Options) http.Handler {
	e := gin.New()
	e.Use(gin.Recovery())

	e.Use(middleware.Ginrus(logrus.StandardLogger(), time.RFC3339, true, opts.UaList))
	e.Use(middleware.Settings(s))
	e.Use(middleware.Remote(conn))
	e.Use(middleware.ExtError())
	if opts.Sunlight {
		e.Use(middleware.Version)
	}

	e.POST("/hook", web.ProcessHook)
	e.POST("/api/initialize_repo", web.ProcessHook)
	e.GET("/healthz", web.Health)

	if opts.Sunlight {
		e.GET("/version", web.Version)
		e.GET("/metrics", gin.WrapH(promhttp.Handler()))
		e.GET("/debug/pprof/", gin.WrapF(pprof.Index))
		e.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
		e.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
		e.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
		e.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
		for _, p := range rpprof.Profiles() {
			e.GET("/debug/pprof/"+p.Name(), gin.WrapH(pprof.Handler(p.Name())))
		}
	}

	return e
}
