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

import (
	"encoding/json"
	"fmt"

	"github.com/mspiegel/go-multierror"
	log "github.com/sirupsen/logrus"
)

// OpResult is the outcome of one provisioning operation.
type OpResult struct {
	Op     string `json:"op"`
	Target string `json:"target"`
	Err    error  `json:"-"`
	// Detail is filled for successful operations that did something
	// other than the default, e.g. "created" vs "updated".
	Detail string `json:"detail,omitempty"`
}

func (r OpResult) OK() bool {
	return r.Err == nil
}

// Summary collects the results of every operation attempted for a
// repository. A failed operation never prevents the next one.
type Summary struct {
	Repo       Repo           `json:"repo"`
	Assignment TeamAssignment `json:"assignment"`
	Results    []OpResult     `json:"results"`
}

func (s *Summary) Add(r OpResult) {
	s.Results = append(s.Results, r)
}

// Failed returns the results that carry an error.
func (s *Summary) Failed() []OpResult {
	var out []OpResult
	for _, r := range s.Results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// Err returns every failure as a single multierror, or nil.
func (s *Summary) Err() error {
	var errs error
	for _, r := range s.Failed() {
		errs = multierror.Append(errs, fmt.Errorf("%s %s: %s", r.Op, r.Target, r.Err))
	}
	return errs
}

// Log writes one line per operation.
func (s *Summary) Log() {
	entry := log.WithField("repo", s.Repo.Slug())
	for _, r := range s.Results {
		e := entry.WithFields(log.Fields{"op": r.Op, "target": r.Target})
		if r.OK() {
			e.Infof("ok %s", r.Detail)
		} else {
			e.Errorf("failed: %s", r.Err)
		}
	}
}

// MarshalJSON reports the error text alongside the result.
func (r OpResult) MarshalJSON() ([]byte, error) {
	type alias OpResult
	v := struct {
		alias
		Error string `json:"error,omitempty"`
	}{alias: alias(r)}
	if r.Err != nil {
		v.Error = r.Err.Error()
	}
	return json.Marshal(v)
}
