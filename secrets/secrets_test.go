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
package secrets

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/capitalone/repo-guardian/envvars"

	"github.com/mspiegel/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) (*rsa.PrivateKey, string) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return key, string(pem.EncodeToMemory(block))
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFromEnv(t *testing.T) {
	key, keyPEM := testKey(t)
	env := &envvars.EnvValues{}
	env.Github.AppID = 42
	env.Github.PrivateKey = keyPEM
	env.Github.WebhookSecret = "s3cret"
	env.Github.Org = "acme"

	s, err := Load(env)
	require.NoError(t, err)
	assert.Equal(t, int64(42), s.AppID)
	assert.Equal(t, "s3cret", s.WebhookSecret)
	assert.Equal(t, "acme", s.Org)
	assert.Equal(t, key.N, s.PrivateKey.N)
}

func TestLoadFromToml(t *testing.T) {
	dir, err := ioutil.TempDir("", "secrets")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	_, keyPEM := testKey(t)
	content := "github_app_id = 7\n" +
		"github_webhook_secret = \"from-file\"\n" +
		"github_org = \"acme\"\n" +
		"github_app_private_key = '''\n" + keyPEM + "'''\n"

	env := &envvars.EnvValues{}
	env.Secrets.File = writeFile(t, dir, "secrets.toml", content)
	env.Github.WebhookSecret = "from-env"

	s, err := Load(env)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.AppID)
	assert.Equal(t, "from-env", s.WebhookSecret)
	assert.Equal(t, "acme", s.Org)
	assert.NotNil(t, s.PrivateKey)
}

func TestLoadFromJson(t *testing.T) {
	dir, err := ioutil.TempDir("", "secrets")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	_, keyPEM := testKey(t)
	data, err := json.Marshal(map[string]interface{}{
		"github_app_id":          9,
		"github_app_private_key": keyPEM,
		"github_webhook_secret":  "from-file",
		"github_org":             "acme",
	})
	require.NoError(t, err)

	env := &envvars.EnvValues{}
	env.Secrets.File = writeFile(t, dir, "secrets.json", string(data))

	s, err := Load(env)
	require.NoError(t, err)
	assert.Equal(t, int64(9), s.AppID)
	assert.Equal(t, "from-file", s.WebhookSecret)
}

func TestLoadFromHjson(t *testing.T) {
	dir, err := ioutil.TempDir("", "secrets")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	_, keyPEM := testKey(t)
	keyFile := writeFile(t, dir, "key.pem", keyPEM)
	content := `{
  # GitHub App registration
  github_app_id: 11
  github_webhook_secret: from-file
  github_org: acme
}
`
	env := &envvars.EnvValues{}
	env.Secrets.File = writeFile(t, dir, "secrets.hjson", content)
	env.Github.PrivateKeyFile = keyFile

	s, err := Load(env)
	require.NoError(t, err)
	assert.Equal(t, int64(11), s.AppID)
	assert.Equal(t, "from-file", s.WebhookSecret)
	assert.Equal(t, "acme", s.Org)
}

func TestLoadMissing(t *testing.T) {
	s, err := Load(&envvars.EnvValues{})
	assert.Nil(t, s)
	errs, ok := err.(*multierror.Error)
	require.True(t, ok, "expected a multierror")
	assert.Len(t, errs.Errors, 4)
}

func TestLoadBadKey(t *testing.T) {
	env := &envvars.EnvValues{}
	env.Github.AppID = 1
	env.Github.PrivateKey = "not a key"
	env.Github.WebhookSecret = "s"
	env.Github.Org = "acme"
	_, err := Load(env)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Parsing GitHub App private key")
}

func TestUnsupportedExtension(t *testing.T) {
	dir, err := ioutil.TempDir("", "secrets")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	env := &envvars.EnvValues{}
	env.Secrets.File = writeFile(t, dir, "secrets.ini", "x=1")
	_, err = Load(env)
	assert.EqualError(t, err, "Unsupported secrets file extension '.ini'")
}
