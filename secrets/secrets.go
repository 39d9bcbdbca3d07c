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
// Package secrets loads the GitHub App credentials, the webhook secret
// and the governed organization. Values come from the environment and
// from an optional secrets file; they are read once at start-up.
package secrets

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/capitalone/repo-guardian/envvars"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/hjson/hjson-go/v4"
	"github.com/mspiegel/go-multierror"
	pkgerrors "github.com/pkg/errors"
	"github.com/pelletier/go-toml"
	log "github.com/sirupsen/logrus"
)

type Secrets struct {
	AppID         int64
	PrivateKey    *rsa.PrivateKey
	WebhookSecret string
	Org           string
}

// fileValues is the layout of the secrets file. The same keys are
// used for the toml, hjson and json formats.
type fileValues struct {
	AppID         int64  `toml:"github_app_id" json:"github_app_id"`
	PrivateKey    string `toml:"github_app_private_key" json:"github_app_private_key"`
	WebhookSecret string `toml:"github_webhook_secret" json:"github_webhook_secret"`
	Org           string `toml:"github_org" json:"github_org"`
}

// Load merges the secrets file named by env (if any) with the values
// set directly in env. Environment values win over the file.
func Load(env *envvars.EnvValues) (*Secrets, error) {
	var vals fileValues
	if env.Secrets.File != "" {
		data, err := ioutil.ReadFile(env.Secrets.File)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "Reading secrets file")
		}
		vals, err = parseFile(env.Secrets.File, data)
		if err != nil {
			return nil, err
		}
		log.Infof("Loaded secrets from %s", env.Secrets.File)
	}
	if env.Github.AppID != 0 {
		vals.AppID = env.Github.AppID
	}
	if env.Github.WebhookSecret != "" {
		vals.WebhookSecret = env.Github.WebhookSecret
	}
	if env.Github.Org != "" {
		vals.Org = env.Github.Org
	}
	if env.Github.PrivateKey != "" {
		vals.PrivateKey = env.Github.PrivateKey
	} else if env.Github.PrivateKeyFile != "" {
		pem, err := ioutil.ReadFile(env.Github.PrivateKeyFile)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "Reading private key file")
		}
		vals.PrivateKey = string(pem)
	}
	return build(vals)
}

func parseFile(name string, data []byte) (fileValues, error) {
	var vals fileValues
	var err error
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &vals)
	case ".hjson", ".json":
		err = hjson.Unmarshal(data, &vals)
	default:
		return vals, fmt.Errorf("Unsupported secrets file extension '%s'", ext)
	}
	if err != nil {
		return vals, pkgerrors.Wrapf(err, "Parsing secrets file %s", name)
	}
	return vals, nil
}

func build(vals fileValues) (*Secrets, error) {
	var errs error
	if vals.AppID == 0 {
		errs = multierror.Append(errs, errors.New("Missing GitHub App id (GITHUB_APP_ID or github_app_id)"))
	}
	if vals.WebhookSecret == "" {
		errs = multierror.Append(errs, errors.New("Missing webhook secret (GITHUB_WEBHOOK_SECRET or github_webhook_secret)"))
	}
	if vals.Org == "" {
		errs = multierror.Append(errs, errors.New("Missing organization (GITHUB_ORG or github_org)"))
	}
	var key *rsa.PrivateKey
	if vals.PrivateKey == "" {
		errs = multierror.Append(errs, errors.New("Missing GitHub App private key (GITHUB_APP_PRIVATE_KEY, GITHUB_APP_PRIVATE_KEY_FILE or github_app_private_key)"))
	} else {
		var err error
		key, err = jwt.ParseRSAPrivateKeyFromPEM([]byte(vals.PrivateKey))
		if err != nil {
			errs = multierror.Append(errs, pkgerrors.Wrap(err, "Parsing GitHub App private key"))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return &Secrets{
		AppID:         vals.AppID,
		PrivateKey:    key,
		WebhookSecret: vals.WebhookSecret,
		Org:           vals.Org,
	}, nil
}
