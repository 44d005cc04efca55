// Package http 提供基本的http服务
package http

import (
	"fmt"
	"net/http"
)

// 默认配置
const (
	DefaultAddr            = "0.0.0.0:5000" //监听所有网卡的5000端口
	DefaultShutdownTimeout = 10
)

type handlerWithMiddleware struct {
	handlerFunc http.HandlerFunc
	middlewares []Middleware
}

// Config Http配置
type Config struct {
	Addr            string `yaml:"addr"`             //Http监听地址
	ReadTimeout     int    `yaml:"read_timeout"`     //读超时,单位秒,0表示不限制
	WriteTimeout    int    `yaml:"write_timeout"`    //写超时,单位秒,0表示不限制
	MaxConns        int    `yaml:"max_conns"`        //最大的并发连接数,0表示不限制
	ShutdownTimeout int    `yaml:"shutdown_timeout"` //停止时等待请求完成的最长时间,单位秒
	middlewares     []Middleware
	handles         map[string]*handlerWithMiddleware
}

// NewConfig 创建配置
func NewConfig(addr string) *Config {
	conf := &Config{Addr: addr}
	conf.ensure()
	return conf
}

func (p *Config) ensure() {
	if p.handles == nil {
		p.handles = map[string]*handlerWithMiddleware{}
	}
}

// Parse implements Configurer
func (p *Config) Parse() error {
	if p.Addr == "" {
		p.Addr = DefaultAddr
	}
	if p.ShutdownTimeout <= 0 {
		p.ShutdownTimeout = DefaultShutdownTimeout
	}
	if p.ReadTimeout < 0 || p.WriteTimeout < 0 {
		return fmt.Errorf("invalid http timeout,read:%d,write:%d", p.ReadTimeout, p.WriteTimeout)
	}
	if p.MaxConns < 0 {
		return fmt.Errorf("invalid http max_conns %d", p.MaxConns)
	}
	p.ensure()
	return nil
}

// RegHandleFunc 注册patternPath的处理函数handlerFunc,middlewares只作用于该处理函数
func (p *Config) RegHandleFunc(patternPath string, handlerFunc http.HandlerFunc, middlewares ...Middleware) error {
	if handlerFunc == nil {
		return fmt.Errorf("can't reg nil handler to %s", patternPath)
	}
	p.ensure()
	if _, ok := p.handles[patternPath]; ok {
		return fmt.Errorf("duplicate path:%s", patternPath)
	}
	p.handles[patternPath] = &handlerWithMiddleware{handlerFunc, middlewares}
	return nil
}

// RegMiddleware 注册全局的middleware,在handler自身的middleware之后执行
func (p *Config) RegMiddleware(middleware Middleware) error {
	if middleware == nil {
		return fmt.Errorf("invalid middleware")
	}
	p.middlewares = append(p.middlewares, middleware)
	return nil
}
