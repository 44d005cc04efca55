package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	c "github.com/fearly231/enterprise-k8s-platform/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHttpServer(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return MiddlewareFunc(func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next(w, r)
			}
		})
	}

	httpConfig := NewConfig("127.0.0.1:0")
	require.NoError(t, httpConfig.RegMiddleware(tag("global")))
	require.NoError(t, httpConfig.RegMiddleware(AccessLog))
	err := httpConfig.RegHandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		RenderText(w, 0, fmt.Sprintf("method:%s, path:%s", r.Method, r.URL.Path))
	}, tag("local"))
	require.NoError(t, err)
	assert.Error(t, httpConfig.RegHandleFunc("/", func(w http.ResponseWriter, r *http.Request) {}))
	assert.Error(t, httpConfig.RegHandleFunc("/nil", nil))
	assert.Error(t, httpConfig.RegMiddleware(nil))

	httpSvc := NewService(httpConfig)
	services := c.NewServices(httpSvc)
	require.NoError(t, services.Init())
	require.NoError(t, services.Start())
	defer services.Stop()

	url := "http://" + httpSvc.ListenAddr().String()
	client := &http.Client{}
	status, body, err := GetURL(client, url)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "method:GET, path:/", body)
	assert.Equal(t, []string{"local", "global"}, order)

	services.Stop()
	assert.Equal(t, c.TERMINATED, httpSvc.State())
	assert.Nil(t, httpSvc.ListenAddr())
	_, _, err = GetURL(client, url)
	assert.Error(t, err)
}

func TestHttpStopWaitRequest(t *testing.T) {
	var finished int32
	started := make(chan struct{})
	httpConfig := NewConfig("127.0.0.1:0")
	require.NoError(t, httpConfig.RegHandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(200 * time.Millisecond)
		atomic.StoreInt32(&finished, 1)
		RenderText(w, 0, "done")
	}))
	httpSvc := NewService(httpConfig)
	require.NoError(t, httpSvc.Init())
	require.True(t, httpSvc.Start())

	url := "http://" + httpSvc.ListenAddr().String()
	result := make(chan string, 1)
	go func() {
		_, body, _ := GetURL(&http.Client{}, url)
		result <- body
	}()
	<-started
	assert.True(t, httpSvc.Stop())
	assert.EqualValues(t, 1, atomic.LoadInt32(&finished))
	assert.Equal(t, "done", <-result)
}

func TestConfigParse(t *testing.T) {
	conf := &Config{}
	require.NoError(t, conf.Parse())
	assert.Equal(t, DefaultAddr, conf.Addr)
	assert.Equal(t, DefaultShutdownTimeout, conf.ShutdownTimeout)

	assert.Error(t, (&Config{MaxConns: -1}).Parse())
	assert.Error(t, (&Config{ReadTimeout: -1}).Parse())
}

func TestServiceListenFail(t *testing.T) {
	httpSvc := NewService(NewConfig("127.0.0.1:-1"))
	require.NoError(t, httpSvc.Init())
	assert.False(t, httpSvc.Start())
	assert.Error(t, NewService(nil).Init())
}

func TestRenderText(t *testing.T) {
	w := httptest.NewRecorder()
	RenderText(w, http.StatusServiceUnavailable, "down\n")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "down\n", w.Body.String())
}
