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
package github

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/capitalone/repo-guardian/exterror"

	jwt "github.com/dgrijalva/jwt-go"
	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// GitHub rejects app tokens valid for more than ten minutes.
const appTokenTTL = 9 * time.Minute

// App holds the GitHub App identity used to mint installation tokens.
type App struct {
	API   string
	AppID int64
	Key   *rsa.PrivateKey
}

func NewApp(rawurl string, appID int64, key *rsa.PrivateKey) *App {
	return &App{
		API:   APIFromURL(rawurl),
		AppID: appID,
		Key:   key,
	}
}

// token signs the JWT that authenticates the app itself. The issue
// time is backdated to tolerate clock drift.
func (a *App) token(now time.Time) (string, error) {
	claims := jwt.StandardClaims{
		IssuedAt:  now.Add(-time.Minute).Unix(),
		ExpiresAt: now.Add(appTokenTTL).Unix(),
		Issuer:    strconv.FormatInt(a.AppID, 10),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return t.SignedString(a.Key)
}

// Installation exchanges the installation id for an access token.
// A new token is requested on every call.
func (a *App) Installation(ctx context.Context, id int64) (*Github, error) {
	signed, err := a.token(time.Now())
	if err != nil {
		err = pkgerrors.Wrap(err, "Signing app token")
		return nil, exterror.Create(http.StatusInternalServerError, err)
	}
	client := createClient(ctx, a.API, signed, "app")
	tok, _, err := client.Apps.CreateInstallationToken(ctx, id, nil)
	if err != nil {
		err = fmt.Errorf("Creating access token for installation %d. %s", id, err)
		return nil, exterror.Create(http.StatusInternalServerError, err)
	}
	log.Debugf("Access token for installation %d expires %s", id, tok.GetExpiresAt())
	return &Github{
		API:          a.API,
		Token:        tok.GetToken(),
		Installation: id,
	}, nil
}
