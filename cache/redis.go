// Package cache 提供基于Redis的存储服务
package cache

import (
	"context"
	"errors"
	"fmt"

	c "github.com/fearly231/enterprise-k8s-platform/common"
	"github.com/gomodule/redigo/redis"
)

// redis commands
const (
	INCR = "INCR"
	GET  = "GET"
)

// RedisClient Redis客户端,多个goroutine可以共享同一个RedisClient
type RedisClient struct {
	c.BaseService
	server *RedisServer
}

// NewRedisClient 使用server创建RedisClient,server需要已经Parse
func NewRedisClient(server *RedisServer) *RedisClient {
	return &RedisClient{
		BaseService: c.BaseService{SName: "redis"},
		server:      server,
	}
}

// Init implements Service.Init,只创建连接池,不检查Redis是否可达
func (p *RedisClient) Init() error {
	if p.server == nil {
		return errors.New("no redis server")
	}
	return p.server.initPool()
}

// Stop implements Service.Stop
func (p *RedisClient) Stop() bool {
	if p.server == nil || p.server.pool == nil {
		return true
	}
	if err := p.server.pool.Close(); err != nil {
		c.Errorf("close redis pool %s fail,err:%v", p.server.Addr(), err)
		return false
	}
	return true
}

// Do 从连接池中取得连接并执行cmd,ctx取消时等待连接和等待回复都会中止
func (p *RedisClient) Do(ctx context.Context, cmd string, args ...interface{}) (reply interface{}, err error) {
	if p.server == nil || p.server.pool == nil {
		return nil, fmt.Errorf("redis client %s not inited", p.Name())
	}
	conn, err := p.server.pool.GetContext(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return redis.DoContext(conn, ctx, cmd, args...)
}

// Incr 原子地将key的值加1并返回新值,key不存在时Redis按0处理
func (p *RedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return redis.Int64(p.Do(ctx, INCR, key))
}

// GetBytes 取得key的原始值,key不存在时ok为false
func (p *RedisClient) GetBytes(ctx context.Context, key string) (value []byte, ok bool, err error) {
	value, err = redis.Bytes(p.Do(ctx, GET, key))
	if err == redis.ErrNil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}
