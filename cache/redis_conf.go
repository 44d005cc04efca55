package cache

import (
	"fmt"
	"net"
	"strconv"
	"time"

	c "github.com/fearly231/enterprise-k8s-platform/common"
	"github.com/gomodule/redigo/redis"
)

// Redis连接池的默认参数
const (
	DefaultHost          = "localhost"
	DefaultPort          = 6379
	DefaultConnectTimout = 5 * 1000
	DefaultReadTimeout   = 5 * 1000
	DefaultWriteTimeout  = 5 * 1000
	DefaultMaxActive     = 100
	DefaultMaxIdle       = 2
	DefaultIdleTimeout   = 60 * 1000
)

// EnvRedisHost 覆盖Redis主机地址的环境变量
const EnvRedisHost = "REDIS_HOST"

// RedisPoolConf  Redis连接池配置
type RedisPoolConf struct {
	ConnectTimeout int `yaml:"connect_timeout"` //连接超时时间,单位毫秒
	ReadTimeout    int `yaml:"read_timeout"`    //读取超时,单位毫秒
	WriteTimeout   int `yaml:"write_timeout"`   //写超时,单位毫秒
	MaxIdle        int `yaml:"max_idle"`        //最大空闲连接
	MaxActive      int `yaml:"max_active"`      //最大活跃连接,<=0时使用DefaultMaxActive
	IdleTimeout    int `yaml:"idle_timeout"`    //空闲连接的超时时间,单位毫秒
}

func (p *RedisPoolConf) withDefault() *RedisPoolConf {
	conf := RedisPoolConf{
		ConnectTimeout: DefaultConnectTimout,
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		MaxActive:      DefaultMaxActive,
		MaxIdle:        DefaultMaxIdle,
		IdleTimeout:    DefaultIdleTimeout,
	}
	if p == nil {
		return &conf
	}
	if p.ConnectTimeout > 0 {
		conf.ConnectTimeout = p.ConnectTimeout
	}
	if p.ReadTimeout > 0 {
		conf.ReadTimeout = p.ReadTimeout
	}
	if p.WriteTimeout > 0 {
		conf.WriteTimeout = p.WriteTimeout
	}
	if p.MaxIdle > 0 {
		conf.MaxIdle = p.MaxIdle
	}
	if p.MaxActive > 0 {
		conf.MaxActive = p.MaxActive
	}
	if p.IdleTimeout > 0 {
		conf.IdleTimeout = p.IdleTimeout
	}
	return &conf
}

// RedisServer Redis实例的配置,端口固定为DefaultPort
type RedisServer struct {
	Host string         `yaml:"host"` //Redis主机地址
	Pool *RedisPoolConf `yaml:"pool"` //连接池配置
	Port int            `yaml:"-"`
	pool *redis.Pool
}

// Parse implements Configurer,环境变量REDIS_HOST优先于配置文件
func (p *RedisServer) Parse() error {
	p.Host = c.EnvString(EnvRedisHost, p.Host)
	if p.Host == "" {
		p.Host = DefaultHost
	}
	if p.Port <= 0 {
		p.Port = DefaultPort
	}
	p.Pool = p.Pool.withDefault()
	c.Infof("redis server:%s", p.Addr())
	return nil
}

// Addr 返回host:port
func (p *RedisServer) Addr() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

func (p *RedisServer) dialer() func() (redis.Conn, error) {
	poolConf := p.Pool.withDefault()
	options := []redis.DialOption{
		redis.DialConnectTimeout(time.Duration(poolConf.ConnectTimeout) * time.Millisecond),
		redis.DialReadTimeout(time.Duration(poolConf.ReadTimeout) * time.Millisecond),
		redis.DialWriteTimeout(time.Duration(poolConf.WriteTimeout) * time.Millisecond),
	}
	addr := p.Addr()
	return func() (redis.Conn, error) {
		return redis.Dial("tcp", addr, options...)
	}
}

// initPool 初始化连接池,连接在第一次使用时才建立
func (p *RedisServer) initPool() error {
	if p.pool != nil {
		return fmt.Errorf("server %s already inited", p.Addr())
	}
	poolConf := p.Pool.withDefault()
	p.pool = &redis.Pool{
		Dial:        p.dialer(),
		MaxActive:   poolConf.MaxActive,
		MaxIdle:     poolConf.MaxIdle,
		IdleTimeout: time.Duration(poolConf.IdleTimeout) * time.Millisecond,
		Wait:        true,
	}
	return nil
}
