package testsupport

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/dnaeon/go-vcr.v2/cassette"
	"gopkg.in/dnaeon/go-vcr.v2/recorder"
)

const (
	fixturesDirectoryConstant      = "testdata"
	fixturesSubdirectoryConstant   = "fixtures"
	cassetteExtensionConstant      = ".yaml"
	privateKeyBitsConstant         = 2048
	privateKeyPEMBlockTypeConstant = "RSA PRIVATE KEY"
)

// FixturePath returns testdata/fixtures/<name> relative to the package under test, without extension.
func FixturePath(name string) string {
	return filepath.Join(fixturesDirectoryConstant, fixturesSubdirectoryConstant, name)
}

// NewReplayTransport replays the cassette stored at fixturePath. Requests are matched on method, host, and path,
// so query strings and bodies do not participate. The recorder is stopped when the test finishes.
func NewReplayTransport(testInstance testing.TB, fixturePath string) http.RoundTripper {
	testInstance.Helper()

	_, statError := os.Stat(fixturePath + cassetteExtensionConstant)
	require.NoError(testInstance, statError)

	replayRecorder, recorderError := recorder.NewAsMode(fixturePath, recorder.ModeReplaying, nil)
	if errors.Is(recorderError, cassette.ErrCassetteNotFound) {
		require.FailNow(testInstance, "cassette not found", fixturePath)
	}
	require.NoError(testInstance, recorderError)

	replayRecorder.SetMatcher(func(request *http.Request, recorded cassette.Request) bool {
		recordedURL, parseError := url.Parse(recorded.URL)
		if parseError != nil {
			return false
		}
		return request.Method == recorded.Method &&
			request.URL.Host == recordedURL.Host &&
			request.URL.Path == recordedURL.Path
	})

	testInstance.Cleanup(func() {
		_ = replayRecorder.Stop()
	})

	return replayRecorder
}

// NewReplayHTTPClient wraps NewReplayTransport in an http.Client.
func NewReplayHTTPClient(testInstance testing.TB, fixturePath string) *http.Client {
	testInstance.Helper()
	return &http.Client{Transport: NewReplayTransport(testInstance, fixturePath)}
}

// GeneratePrivateKeyPEM returns a fresh PKCS#1 RSA key suitable for signing App JWTs.
func GeneratePrivateKeyPEM(testInstance testing.TB) []byte {
	testInstance.Helper()

	privateKey, generateError := rsa.GenerateKey(rand.Reader, privateKeyBitsConstant)
	require.NoError(testInstance, generateError)

	return pem.EncodeToMemory(&pem.Block{
		Type:  privateKeyPEMBlockTypeConstant,
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
}
