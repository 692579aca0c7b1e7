package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonasZeihe/NoctuaLight/internal/hardware"
)

func TestParseDomainsParam(t *testing.T) {
	sel, err := parseDomainsParam("")
	require.NoError(t, err)
	assert.Nil(t, sel)

	sel, err = parseDomainsParam("cpu, RAM ,disk")
	require.NoError(t, err)
	assert.True(t, sel[hardware.DomainCPU])
	assert.True(t, sel[hardware.DomainRAM])
	assert.True(t, sel[hardware.DomainDisk])
	assert.False(t, sel[hardware.DomainGPU])

	_, err = parseDomainsParam("cpu,keyboard")
	assert.Error(t, err)
}

func TestParseBoolParam(t *testing.T) {
	q := url.Values{"all": {"true"}, "bad": {"maybe"}}

	v, err := parseBoolParam(q, "all")
	require.NoError(t, err)
	assert.True(t, v)

	v, err = parseBoolParam(q, "missing")
	require.NoError(t, err)
	assert.False(t, v)

	_, err = parseBoolParam(q, "bad")
	assert.Error(t, err)
}

func TestParseIntParam(t *testing.T) {
	q := url.Values{"limit": {"25"}, "neg": {"-1"}, "bad": {"lots"}}

	v, err := parseIntParam(q, "limit")
	require.NoError(t, err)
	assert.Equal(t, 25, v)

	v, err = parseIntParam(q, "missing")
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = parseIntParam(q, "neg")
	assert.Error(t, err)
	_, err = parseIntParam(q, "bad")
	assert.Error(t, err)
}

func TestAPISecretFilter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	do := func(secret, path, key string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if key != "" {
			req.Header.Set("X-API-Key", key)
		}
		rec := httptest.NewRecorder()
		APISecretFilter(secret)(ok).ServeHTTP(rec, req)
		return rec.Code
	}

	// Empty secret disables the check entirely.
	assert.Equal(t, http.StatusOK, do("", "/api/v1/report", ""))

	assert.Equal(t, http.StatusOK, do("s3cret", "/api/v1/report", "s3cret"))
	assert.Equal(t, http.StatusUnauthorized, do("s3cret", "/api/v1/report", ""))
	assert.Equal(t, http.StatusUnauthorized, do("s3cret", "/api/v1/report", "wrong"))

	// Liveness and docs stay open.
	assert.Equal(t, http.StatusOK, do("s3cret", "/healthz", ""))
	assert.Equal(t, http.StatusOK, do("s3cret", "/docs/", ""))
}

func TestDomainStrings(t *testing.T) {
	got := domainStrings(hardware.Domains())
	assert.Equal(t, []string{"system", "cpu", "gpu", "ram", "disk", "network", "motherboard", "bios"}, got)
}
