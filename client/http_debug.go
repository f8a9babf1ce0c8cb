package client

import (
	"bytes"
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport logs request and response dumps at debug level.
//
// It sits beneath the API-key transport, so requests reaching it already
// carry the bearer token; the Authorization line is redacted from every dump.
// Enable it with WithDebugLogging or SMEPLUG_DEBUG=true / DEBUG=true.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", redactAuthorization(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

var authorizationPrefix = []byte("authorization:")

// redactAuthorization replaces the value of any Authorization header line.
func redactAuthorization(dump []byte) string {
	lines := bytes.Split(dump, []byte("\n"))
	for i, line := range lines {
		if len(line) >= len(authorizationPrefix) && bytes.EqualFold(line[:len(authorizationPrefix)], authorizationPrefix) {
			lines[i] = []byte("Authorization: [REDACTED]\r")
		}
	}
	return string(bytes.Join(lines, []byte("\n")))
}

// debugLoggingRequested reports whether SMEPLUG_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("SMEPLUG_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
