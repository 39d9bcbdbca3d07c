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
package github

import (
	"context"
	"net/http"
	"net/url"
	"runtime"
	"strconv"
	"strings"

	"github.com/capitalone/repo-guardian/usage"

	"github.com/google/go-github/v42/github"
	"golang.org/x/oauth2"
)

const (
	gitHubSubstring = "github.com/google/go-github/v42/"
	gitHubCaller    = "/github.(*Client).Do"
)

// UsageTransport records every outgoing API request.
type UsageTransport struct {
	Installation string
	Event        string
	// Transport is the underlying HTTP transport to use when making requests.
	// It will default to http.DefaultTransport if nil.
	Transport http.RoundTripper
}

// RoundTrip implements the RoundTripper interface.
func (t *UsageTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	caller := t.caller()
	usage.RecordApiRequest(t.Installation, t.Event, caller)
	return t.transport().RoundTrip(req)
}

func locateParent(frames *runtime.Frames) bool {
	for {
		frame, more := frames.Next()
		if strings.HasSuffix(frame.Function, gitHubCaller) {
			return true
		}
		if !more {
			return false
		}
	}
}

func (t *UsageTransport) caller() string {
	pc := make([]uintptr, 16)
	n := runtime.Callers(2, pc)
	pc = pc[:n]
	frames := runtime.CallersFrames(pc)
	success := locateParent(frames)
	if success {
		frame, _ := frames.Next()
		idx := strings.Index(frame.Function, gitHubSubstring)
		if idx >= 0 {
			return frame.Function[idx+len(gitHubSubstring):]
		}
		return frame.Function
	}
	return ""
}

func (t *UsageTransport) transport() http.RoundTripper {
	if t.Transport != nil {
		return t.Transport
	}
	return http.DefaultTransport
}

func setupClient(ctx context.Context, g *Github) *github.Client {
	return createClient(ctx, g.API, g.Token, strconv.FormatInt(g.Installation, 10))
}

func createClient(ctx context.Context, rawurl, accessToken, installation string) *github.Client {
	token := oauth2.Token{AccessToken: accessToken}
	source := oauth2.StaticTokenSource(&token)
	client := oauth2.NewClient(context.Background(), source)
	client.Transport = &UsageTransport{
		Installation: installation,
		Event:        usage.GetEventFromContext(ctx),
		Transport:    client.Transport}
	g := github.NewClient(client)
	g.BaseURL, _ = url.Parse(rawurl)
	return g
}
