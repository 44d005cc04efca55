package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	c "github.com/fearly231/enterprise-k8s-platform/common"
	"golang.org/x/net/netutil"
)

type tcpKeepAliveListener struct {
	*net.TCPListener
}

// Accept 接受连接并开启keepalive
func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	if err = tc.SetKeepAlive(true); err != nil {
		tc.Close()
		return nil, err
	}
	if err = tc.SetKeepAlivePeriod(3 * time.Minute); err != nil {
		tc.Close()
		return nil, err
	}
	return tc, nil
}

// Service Http服务
type Service struct {
	c.BaseService
	Conf      *Config
	listener  net.Listener
	server    *http.Server
	serveDone sync.WaitGroup
	lock      sync.Mutex
}

// NewService 创建Http服务
func NewService(conf *Config) *Service {
	return &Service{
		BaseService: c.BaseService{SName: "http", Order: 10},
		Conf:        conf,
	}
}

// Init 初始化Http服务
func (p *Service) Init() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.Conf == nil {
		return errors.New("no http conf")
	}
	if err := p.Conf.Parse(); err != nil {
		return err
	}

	serveMux := http.NewServeMux()
	for pattern, handler := range p.Conf.handles {
		serveMux.Handle(pattern, p.handleWithMiddleware(handler))
		c.Infof("Register handler,path:%s", pattern)
	}

	p.server = &http.Server{
		Addr:         p.Conf.Addr,
		ReadTimeout:  time.Duration(p.Conf.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(p.Conf.WriteTimeout) * time.Second,
		Handler:      serveMux}
	return nil
}

// handleWithMiddleware 依次调用handler自身的middleware和全局的middleware
func (p *Service) handleWithMiddleware(handler *handlerWithMiddleware) http.HandlerFunc {
	var middlewares = append(append([]Middleware{}, handler.middlewares...), p.Conf.middlewares...)

	h := handler.handlerFunc
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i].Handle(h)
	}
	return h
}

// Start 启动Http服务,开始端口监听和服务处理
func (p *Service) Start() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	c.Infof("Listen at %s", p.Conf.Addr)
	ln, err := net.Listen("tcp", p.Conf.Addr)
	if err != nil {
		c.Errorf("Listen at %s fail,error:%v", p.Conf.Addr, err)
		return false
	}

	tcpListener := tcpKeepAliveListener{ln.(*net.TCPListener)}
	if p.Conf.MaxConns > 0 {
		p.listener = netutil.LimitListener(tcpListener, p.Conf.MaxConns)
	} else {
		p.listener = tcpListener
	}

	p.serveDone.Add(1)
	go func(server *http.Server, listener net.Listener) {
		defer p.serveDone.Done()
		err := server.Serve(listener)
		if err != nil {
			var errLevel = c.Error
			if errors.Is(err, net.ErrClosed) || errors.Is(err, http.ErrServerClosed) {
				errLevel = c.Warn
			}
			c.Logf(errLevel, "server.Serve return with %v", err)
		}
	}(p.server, p.listener)
	return true
}

// ListenAddr 返回实际监听的地址,未启动时返回nil
func (p *Service) ListenAddr() net.Addr {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.listener == nil {
		return nil
	}
	return p.listener.Addr()
}

// Stop 停止Http服务,关闭端口监听并等待正在处理的请求完成,最多等待ShutdownTimeout秒
func (p *Service) Stop() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.server == nil {
		return true
	}

	c.Infof("Waiting shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(p.Conf.ShutdownTimeout)*time.Second)
	defer cancel()
	ok := true
	if err := p.server.Shutdown(ctx); err != nil {
		c.Errorf("Shutdown error:%v", err)
		p.server.Close()
		ok = false
	}
	p.serveDone.Wait()
	c.Infof("Finish shutdown")

	p.listener = nil
	p.server = nil
	return ok
}
