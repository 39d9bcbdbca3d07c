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
package usage

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type usageType int

const (
	event usageType = iota
)

func AddEventToContext(c context.Context, e string) context.Context {
	return context.WithValue(c, event, e)
}

func GetEventFromContext(c context.Context) string {
	e, ok := c.Value(event).(string)
	if !ok {
		return ""
	}
	return e
}

var (
	hookCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardian_webhooks_total",
			Help: "Incoming webhooks by event and outcome.",
		},
		[]string{"event", "outcome"},
	)
	apiCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardian_github_requests_total",
			Help: "Outgoing GitHub API requests by triggering event.",
		},
		[]string{"event"},
	)
	opCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardian_provision_operations_total",
			Help: "Provisioning operations by name and result.",
		},
		[]string{"op", "result"},
	)
	registerOnce sync.Once
)

// Register adds the usage metrics to the default Prometheus registry.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(hookCounter, apiCounter, opCounter)
	})
}

var lock = sync.Mutex{}

type Usage struct {
	Installations map[string]int `json:"installations"`
	HookIn        map[string]int `json:"hook_in"`
	HookOut       map[string]int `json:"hook_out"`
	RemoteReq     map[string]int `json:"remote"`
}

var data Usage

func init() {
	data = createUsage()
}

func createUsage() Usage {
	return Usage{
		Installations: make(map[string]int),
		HookIn:        make(map[string]int),
		HookOut:       make(map[string]int),
		RemoteReq:     make(map[string]int),
	}
}

func RecordIncomingWebHook(event string) {
	lock.Lock()
	data.HookIn[event]++
	lock.Unlock()
}

// RecordOutcome counts how an incoming webhook was answered.
func RecordOutcome(event string, outcome string) {
	hookCounter.WithLabelValues(event, outcome).Inc()
}

// RecordOperation counts one provisioning operation.
func RecordOperation(op string, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	opCounter.WithLabelValues(op, result).Inc()
}

func RecordApiRequest(installation string, event string, req string) {
	apiCounter.WithLabelValues(event).Inc()
	lock.Lock()
	data.Installations[installation]++
	data.HookOut[event]++
	data.RemoteReq[req]++
	lock.Unlock()
}

func copyMap(dst, src map[string]int) {
	for k, v := range src {
		dst[k] = v
	}
}

func GetStats() Usage {
	stats := createUsage()
	lock.Lock()
	copyMap(stats.Installations, data.Installations)
	copyMap(stats.HookIn, data.HookIn)
	copyMap(stats.HookOut, data.HookOut)
	copyMap(stats.RemoteReq, data.RemoteReq)
	lock.Unlock()
	return stats
}

func writeLog() {
	log.Info("Usage statistics for the past hour")
	for k, v := range data.Installations {
		log.Infof("Installation %s : %d api requests", k, v)
	}
	for k, v := range data.HookIn {
		log.Infof("Hook %s : %d incoming requests", k, v)
	}
	for k, v := range data.HookOut {
		log.Infof("Hook %s : %d outgoing requests", k, v)
	}
	for k, v := range data.RemoteReq {
		log.Infof("Remote request %s : %d requests", k, v)
	}
}

func resetStats() {
	data = createUsage()
}

func usageTask() {
	wait := 60 - time.Now().Minute()
	timer := time.NewTimer(time.Duration(wait) * time.Minute)
	<-timer.C
	ticker := time.NewTicker(time.Hour)
	for {
		lock.Lock()
		writeLog()
		resetStats()
		lock.Unlock()
		<-ticker.C
	}
}

func Start() {
	Register()
	go usageTask()
}
