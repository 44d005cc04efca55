// Package config 汇总应用的配置,配置文件可选,环境变量优先
package config

import (
	"github.com/fearly231/enterprise-k8s-platform/cache"
	c "github.com/fearly231/enterprise-k8s-platform/common"
	h "github.com/fearly231/enterprise-k8s-platform/http"
	"github.com/fearly231/enterprise-k8s-platform/visit"
)

// AppConfig 应用配置
type AppConfig struct {
	c.AppConfig `yaml:",inline"`
	HTTP        *h.Config          `yaml:"http"`
	Redis       *cache.RedisServer `yaml:"redis"`
	Visit       *visit.Config      `yaml:"visit"`
}

// Parse implements Configurer,缺失的配置段使用默认值
func (p *AppConfig) Parse() error {
	if p.LogConfig == nil {
		p.LogConfig = &c.LogConfig{}
	}
	if p.HTTP == nil {
		p.HTTP = h.NewConfig("")
	}
	if p.Redis == nil {
		p.Redis = &cache.RedisServer{}
	}
	if p.Visit == nil {
		p.Visit = &visit.Config{}
	}
	return c.Parse(p)
}

// Load 加载配置.files为configDir下的YAML文件,按顺序加载,后加载的覆盖先前的;
// addon为YAML片段,最后加载.files和addon都为空时只使用默认值和环境变量
func Load(addon string, configDir string, files ...string) (*AppConfig, error) {
	conf := &AppConfig{}
	if len(files) > 0 || addon != "" {
		if err := c.LoadConfig(conf, addon, configDir, files...); err != nil {
			return nil, err
		}
	}
	if err := conf.Parse(); err != nil {
		return nil, err
	}
	return conf, nil
}
