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
package logstats

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	lock     = sync.Mutex{}
	repos    = map[string]bool{}
	teams    = map[string]bool{}
	orphans  = 0
	failures = 0
)

// RecordRepo notes a repository that was provisioned for team.
func RecordRepo(slug, team string) {
	lock.Lock()
	repos[slug] = true
	teams[team] = true
	lock.Unlock()
}

// RecordOrphan notes a repository whose creator belongs to no team.
func RecordOrphan() {
	lock.Lock()
	orphans++
	lock.Unlock()
}

// RecordFailures notes operations that failed while provisioning.
func RecordFailures(n int) {
	lock.Lock()
	failures += n
	lock.Unlock()
}

type Stats struct {
	Repos    int
	Teams    int
	Orphans  int
	Failures int
}

func GetStats() Stats {
	lock.Lock()
	defer lock.Unlock()
	return Stats{
		Repos:    len(repos),
		Teams:    len(teams),
		Orphans:  orphans,
		Failures: failures,
	}
}

func resetStats() {
	repos = map[string]bool{}
	teams = map[string]bool{}
	orphans = 0
	failures = 0
}

func writeLog() {
	log.Infof("Provisioned %d repositories in last period", len(repos))
	log.Infof("Assigned %d distinct teams in last period", len(teams))
	log.Infof("Rejected %d repositories without an owning team in last period", orphans)
	log.Infof("Recorded %d failed operations in last period", failures)
}

func logTask(period time.Duration) {
	t := time.NewTicker(period)
	for {
		<-t.C
		lock.Lock()
		writeLog()
		resetStats()
		lock.Unlock()
	}
}

// Start logs the statistics every period. A zero period disables logging.
func Start(period time.Duration) {
	if period == 0 {
		return
	}
	go logTask(period)
}
