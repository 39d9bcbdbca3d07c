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
package envvars

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ianschenck/envflag"
	"github.com/mspiegel/go-multierror"
)

type EnvValues struct {
	// Server configuration
	Server struct {
		Addr string
		Cert string
		Key  string
	}
	// External (user-facing) customization
	Branding struct {
		Name string
	}
	// Github App integration
	Github struct {
		Url            string
		AppID          int64
		PrivateKey     string
		PrivateKeyFile string
		WebhookSecret  string
		Org            string
	}
	// Secret store
	Secrets struct {
		File string
	}
	// Governance customization
	Guardian struct {
		AdminSuffix    string
		CodeownersPath string
		ReadmePath     string
	}
	// Logging/debug config
	Monitor struct {
		LogLevel  string
		Sunlight  bool
		UaList    string
		LogPeriod time.Duration
	}
}

var Env EnvValues

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
	"panic": true,
}

func init() {
	configure()
}

func configure() {
	envflag.StringVar(&Env.Server.Addr, "SERVER_ADDR", ":8000", "Server ip address and port")
	envflag.StringVar(&Env.Server.Cert, "SERVER_CERT", "", "Path to SSL certificate")
	envflag.StringVar(&Env.Server.Key, "SERVER_KEY", "", "SSL certificate key")

	envflag.StringVar(&Env.Branding.Name, "BRANDING_NAME", "repo-guardian", "Branding of this service")

	envflag.StringVar(&Env.Github.Url, "GITHUB_URL", "https://github.com", "Github url")
	envflag.Int64Var(&Env.Github.AppID, "GITHUB_APP_ID", 0, "GitHub App identifier. Required unless set in the secrets file")
	envflag.StringVar(&Env.Github.PrivateKey, "GITHUB_APP_PRIVATE_KEY", "", "GitHub App private key (PEM)")
	envflag.StringVar(&Env.Github.PrivateKeyFile, "GITHUB_APP_PRIVATE_KEY_FILE", "", "Path to the GitHub App private key (PEM)")
	envflag.StringVar(&Env.Github.WebhookSecret, "GITHUB_WEBHOOK_SECRET", "", "Webhook shared secret. Required unless set in the secrets file")
	envflag.StringVar(&Env.Github.Org, "GITHUB_ORG", "", "GitHub organization governed by this service")

	envflag.StringVar(&Env.Secrets.File, "GUARDIAN_SECRETS_FILE", "", "Secrets file (.toml, .hjson or .json)")

	envflag.StringVar(&Env.Guardian.AdminSuffix, "GUARDIAN_ADMIN_SUFFIX", "_Admin", "Suffix naming the admin variant of a team")
	envflag.StringVar(&Env.Guardian.CodeownersPath, "GUARDIAN_CODEOWNERS_PATH", ".github/CODEOWNERS", "Repository path of the CODEOWNERS file")
	envflag.StringVar(&Env.Guardian.ReadmePath, "GUARDIAN_README_PATH", "README.md", "Repository path of the README file")

	envflag.StringVar(&Env.Monitor.LogLevel, "LOG_LEVEL", "info", "One of debug|info|warn|error|fatal|panic")
	envflag.BoolVar(&Env.Monitor.Sunlight, "GUARDIAN_SUNLIGHT", false, "Exposes additional endpoints")
	envflag.StringVar(&Env.Monitor.UaList, "BLACKLIST_USER_AGENTS", "", "Skip logging of these agents")
	envflag.DurationVar(&Env.Monitor.LogPeriod, "LOG_STATS_PERIOD", 0, "Period logging of statistics")

	envflag.Parse()

	Env.Monitor.LogLevel = strings.ToLower(Env.Monitor.LogLevel)
	Env.Github.Url = strings.TrimRight(Env.Github.Url, "/")
}

func Usage() {
	envflag.EnvironmentFlags.PrintDefaults()
}

// Validate checks the values that do not depend on the secret store.
// Missing credentials are reported by the secrets package once the
// secrets file has been merged in.
func Validate() error {
	var errs error
	if Env.Github.Url == "" {
		err := errors.New("Environment variable GITHUB_URL is empty")
		errs = multierror.Append(errs, err)
	} else if !strings.HasPrefix(Env.Github.Url, "https://") {
		err := errors.New("GITHUB_URL must have prefix 'https://'")
		errs = multierror.Append(errs, err)
	}
	if (Env.Server.Cert != "" && Env.Server.Key == "") || (Env.Server.Cert == "" && Env.Server.Key != "") {
		err := errors.New("Both server SSL certificate and SSL must be specified for SSL.")
		errs = multierror.Append(errs, err)
	}
	if Env.Github.PrivateKey != "" && Env.Github.PrivateKeyFile != "" {
		err := errors.New("Only one of GITHUB_APP_PRIVATE_KEY and GITHUB_APP_PRIVATE_KEY_FILE may be set")
		errs = multierror.Append(errs, err)
	}
	if Env.Guardian.AdminSuffix == "" {
		err := errors.New("Environment variable GUARDIAN_ADMIN_SUFFIX is empty")
		errs = multierror.Append(errs, err)
	}
	if !logLevels[Env.Monitor.LogLevel] {
		err := fmt.Errorf("Environment variable LOG_LEVEL '%s' must be one of: %s",
			Env.Monitor.LogLevel,
			"'debug', 'info', 'warn', 'error', 'fatal', 'panic'")
		errs = multierror.Append(errs, err)
	}
	return errs
}
