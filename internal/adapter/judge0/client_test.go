package judge0_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/thinkfirst.net/internal/adapter/judge0"
	"gitlab.com/thinkfirst.net/internal/adapter/logging"
	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/domain"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

func newClient(baseURL string) *judge0.Client {
	return judge0.NewClient(&config.Judge0Config{
		BaseURL:       baseURL,
		Timeout:       5 * time.Second,
		CPUTimeLimit:  5,
		MemoryLimitKB: 128000,
	}, logging.NewNopLogger())
}

func TestExecuteSendsSynchronousSubmission(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/submissions", r.URL.Path)
		assert.Equal(t, "false", r.URL.Query().Get("base64_encoded"))
		assert.Equal(t, "true", r.URL.Query().Get("wait"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"token": "abc",
			"stdout": "[0,1]\n",
			"stderr": null,
			"compile_output": null,
			"message": null,
			"time": "0.012",
			"memory": 3280,
			"status": {"id": 3, "description": "Accepted"}
		}`))
	}))
	defer server.Close()

	res, err := newClient(server.URL+"/").Execute(context.Background(), "print(1)", domain.LanguagePython, "nums = [1]")

	require.NoError(t, err)
	assert.Equal(t, "print(1)", got["source_code"])
	assert.Equal(t, float64(71), got["language_id"])
	assert.Equal(t, "nums = [1]", got["stdin"])
	assert.Equal(t, float64(5), got["cpu_time_limit"])
	assert.Equal(t, float64(128000), got["memory_limit"])

	assert.True(t, res.Accepted())
	assert.Equal(t, "[0,1]\n", res.Stdout)
	assert.Empty(t, res.Stderr)
	assert.Equal(t, "0.012", res.Time)
	require.NotNil(t, res.MemoryKB)
	assert.Equal(t, int64(3280), *res.MemoryKB)
}

func TestExecuteLanguageIDs(t *testing.T) {
	want := map[domain.Language]float64{
		domain.LanguagePython:     71,
		domain.LanguageJavaScript: 63,
		domain.LanguageJava:       62,
		domain.LanguageCpp:        54,
		domain.LanguageC:          50,
	}
	for lang, id := range want {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, id, body["language_id"], lang.String())
			_, _ = w.Write([]byte(`{"status": {"id": 3, "description": "Accepted"}}`))
		}))
		_, err := newClient(server.URL).Execute(context.Background(), "x", lang, "")
		require.NoError(t, err)
		server.Close()
	}
}

func TestExecuteRejectsUnknownLanguage(t *testing.T) {
	_, err := newClient("http://127.0.0.1:1").Execute(context.Background(), "puts 1", domain.Language("ruby"), "")
	assert.ErrorIs(t, err, errs.UnsupportedLanguage)
}

func TestExecuteKeepsCompileErrorsInResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"compile_output": "error: expected ';'", "status": {"id": 6, "description": "Compilation Error"}}`))
	}))
	defer server.Close()

	res, err := newClient(server.URL).Execute(context.Background(), "int main(", domain.LanguageCpp, "")

	require.NoError(t, err)
	assert.False(t, res.Accepted())
	assert.Equal(t, "error: expected ';'", res.CompileOutput)
	assert.Empty(t, res.Time)
	assert.Nil(t, res.MemoryKB)
}

func TestExecuteErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error": "language with id 99 doesn't exist"}`))
	}))
	defer server.Close()

	_, err := newClient(server.URL).Execute(context.Background(), "x", domain.LanguageC, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.EngineError)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "doesn't exist")
}

func TestExecuteEngineNotRunning(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	_, err = newClient("http://"+addr).Execute(context.Background(), "print(1)", domain.LanguagePython, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.EngineUnavailable)
	assert.Contains(t, err.Error(), "docker-compose")
}
