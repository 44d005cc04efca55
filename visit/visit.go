// Package visit 统计访问次数,并返回处理请求的实例名称
package visit

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	c "github.com/fearly231/enterprise-k8s-platform/common"
	h "github.com/fearly231/enterprise-k8s-platform/http"
)

// DefaultKey 计数器在存储中的key
const DefaultKey = "hits"

// Store 计数器的存储,实现需要保证Incr是原子的,多个goroutine可以并发调用
type Store interface {
	// Incr 将key加1并返回新值,key不存在时从0开始
	Incr(ctx context.Context, key string) (int64, error)
	// GetBytes 取得key的值,key不存在时ok为false
	GetBytes(ctx context.Context, key string) (value []byte, ok bool, err error)
}

// HostSource 返回当前实例的主机名
type HostSource func() string

// Config 计数配置
type Config struct {
	Key string `yaml:"key"`
	// ErrorStatus 访问存储失败时的响应状态码,0表示200
	ErrorStatus int `yaml:"error_status"`
}

// Parse implements Configurer
func (p *Config) Parse() error {
	p.Key = strings.TrimSpace(p.Key)
	if p.Key == "" {
		p.Key = DefaultKey
	}
	if p.ErrorStatus != 0 && (p.ErrorStatus < 100 || p.ErrorStatus > 599) {
		return fmt.Errorf("invalid visit error_status %d", p.ErrorStatus)
	}
	return nil
}

// Handler 处理"/"上的请求
type Handler struct {
	store       Store
	host        HostSource
	key         string
	errorStatus int
}

// NewHandler 创建Handler,host为nil时使用common.Hostname
func NewHandler(store Store, host HostSource, conf *Config) (*Handler, error) {
	if store == nil {
		return nil, fmt.Errorf("store must not be nil")
	}
	if conf == nil {
		conf = &Config{}
	}
	if err := conf.Parse(); err != nil {
		return nil, err
	}
	if host == nil {
		host = c.Hostname
	}
	return &Handler{
		store:       store,
		host:        host,
		key:         conf.Key,
		errorStatus: conf.ErrorStatus,
	}, nil
}

// Count 增加计数并读回当前值
func (p *Handler) Count(ctx context.Context) (string, error) {
	if _, err := p.store.Incr(ctx, p.key); err != nil {
		return "", err
	}
	value, ok, err := p.store.GetBytes(ctx, p.key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("key %s not found", p.key)
	}
	return string(value), nil
}

// Message 成功时的响应内容
func Message(count, hostname string) string {
	return fmt.Sprintf("Welcome! We have been visited %s times.\nServed by instance: %s\n", count, hostname)
}

// ErrorMessage 访问存储失败时的响应内容
func ErrorMessage(err error) string {
	return fmt.Sprintf("Error connecting to the store: %v\n", err)
}

// ServeHTTP 只处理"/",GET和HEAD会计数,OPTIONS返回允许的方法
func (p *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	case http.MethodOptions:
		w.Header().Set("Allow", "GET, HEAD, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	default:
		w.Header().Set("Allow", "GET, HEAD, OPTIONS")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	count, err := p.Count(r.Context())
	if err != nil {
		c.Warnf("count %s fail,err:%v", p.key, err)
		h.RenderText(w, p.errorStatus, ErrorMessage(err))
		return
	}
	h.RenderText(w, http.StatusOK, Message(count, p.host()))
}

// Register 把Handler注册到"/"
func (p *Handler) Register(conf *h.Config) error {
	return conf.RegHandleFunc("/", p.ServeHTTP)
}
