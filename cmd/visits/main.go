// visits 统计访问次数的Web服务,用于观察多个实例之间的负载均衡
package main

import (
	"flag"
	"os"
	"strings"

	"github.com/fearly231/enterprise-k8s-platform/cache"
	c "github.com/fearly231/enterprise-k8s-platform/common"
	"github.com/fearly231/enterprise-k8s-platform/config"
	h "github.com/fearly231/enterprise-k8s-platform/http"
	"github.com/fearly231/enterprise-k8s-platform/visit"
)

type app struct {
	services *c.Services
	http     *h.Service
}

func main() {
	confFiles := flag.String("conf", "", "yaml config files separated by comma, optional")
	confDir := flag.String("conf_dir", "", "directory of the -conf files")
	confAddon := flag.String("conf_addon", "", "yaml snippet loaded after the -conf files")
	flag.Parse()

	conf, err := config.Load(*confAddon, *confDir, splitFiles(*confFiles)...)
	if err != nil {
		exit("load config fail,err:%v", err)
	}
	a, err := setup(conf)
	if err != nil {
		exit("setup fail,err:%v", err)
	}
	if err = a.services.Start(); err != nil {
		a.services.Stop()
		exit("start fail,err:%v", err)
	}

	hook := c.NewShutdownhook()
	hook.AddHook(a.services.Stop)
	hook.AddHook(c.SyncLogger)
	hook.WaitShutdown()
}

func exit(format string, params ...interface{}) {
	c.Errorf(format, params...)
	c.SyncLogger()
	os.Exit(1)
}

func splitFiles(files string) []string {
	var result []string
	for _, f := range strings.Split(files, ",") {
		if f = strings.TrimSpace(f); f != "" {
			result = append(result, f)
		}
	}
	return result
}

// setup 使用已加载的配置创建服务,Redis只在第一次请求时连接
func setup(conf *config.AppConfig) (*app, error) {
	redisClient := cache.NewRedisClient(conf.Redis)
	handler, err := visit.NewHandler(redisClient, c.Hostname, conf.Visit)
	if err != nil {
		return nil, err
	}
	if err = handler.Register(conf.HTTP); err != nil {
		return nil, err
	}
	if err = conf.HTTP.RegMiddleware(h.AccessLog); err != nil {
		return nil, err
	}

	httpService := h.NewService(conf.HTTP)
	services := c.NewServices(redisClient, httpService)
	if err = services.Init(); err != nil {
		return nil, err
	}
	return &app{services: services, http: httpService}, nil
}
