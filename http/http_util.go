package http

import (
	"io"
	"net/http"

	c "github.com/fearly231/enterprise-k8s-platform/common"
)

// RenderText 以text/plain输出text,status为0时使用200
func RenderText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if status != 0 && status != http.StatusOK {
		w.WriteHeader(status)
	}
	if _, err := io.WriteString(w, text); err != nil {
		c.Warnf("write response fail,err:%v", err)
	}
}

// GetURL 请求URL,返回状态码和响应内容
func GetURL(client *http.Client, url string) (status int, body string, err error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(b), nil
}
