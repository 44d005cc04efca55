package common

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"runtime"
)

var errInvalidConf = errors.New("invalid conf")

// ConfigLoader 配置内容加载器
type ConfigLoader interface {
	// Load 读取configPath的全部内容
	Load(configPath string) ([]byte, error)
	// Exist configPath是否为存在的普通文件
	Exist(configPath string) (bool, error)
}

// ConfigFileLoader 本地文件加载器
type ConfigFileLoader struct{}

// Load implements ConfigLoader
func (ConfigFileLoader) Load(configPath string) ([]byte, error) {
	return os.ReadFile(configPath)
}

// Exist implements ConfigLoader,目录视为不存在
func (ConfigFileLoader) Exist(configPath string) (bool, error) {
	info, err := os.Stat(configPath)
	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// FileLoader LoadConfig使用的加载器
var FileLoader ConfigLoader = ConfigFileLoader{}

// Configurer 配置器
type Configurer interface {
	//解析配置
	Parse() error
}

// LogConfig 日志配置
type LogConfig struct {
	Env        string `yaml:"env"`         //development或production
	Format     string `yaml:"format"`      //console或json,默认console
	FileName   string `yaml:"file_name"`   //为空时输出到stderr
	MaxSize    int    `yaml:"max_size"`    //单个文件大小,单位MB
	MaxBackups int    `yaml:"max_backups"` //保留的文件个数
	MaxAge     int    `yaml:"max_age"`     //保留的天数
	NoCaller   bool   `yaml:"no_caller"`
	Level      string `yaml:"level"`
}

// Parse 校验日志配置,并替换全局Logger
func (p *LogConfig) Parse() error {
	if p.Format != "" && p.Format != FormatConsole && p.Format != FormatJSON {
		return fmt.Errorf("invalid log format %q", p.Format)
	}
	if p.Level != "" {
		if _, ok := LogLevel(p.Level).zapLevel(); !ok {
			return fmt.Errorf("invalid log level %q", p.Level)
		}
	}
	return initLogger(p)
}

// RuntimeConfig 运行期配置
type RuntimeConfig struct {
	Maxprocs int `yaml:"maxprocs"` //最大的PROCS个数
}

// Parse 设置GOMAXPROCS
func (p *RuntimeConfig) Parse() error {
	if p.Maxprocs > 0 {
		old := runtime.GOMAXPROCS(p.Maxprocs)
		Infof("set GOMAXPROCS to %d,old is %d", p.Maxprocs, old)
	}
	return nil
}

// AppConfig 基础的应用配置,通常以inline的方式嵌入到应用自己的配置中
type AppConfig struct {
	*LogConfig     `yaml:"log"`
	*RuntimeConfig `yaml:"runtime"`
}

// Parse 解析基础的应用配置
func (p *AppConfig) Parse() error {
	return Parse(p)
}

// Parse 依次调用conf中实现了Configurer的字段的Parse,nil字段会被跳过
func Parse(conf interface{}) error {
	v := reflect.Indirect(reflect.ValueOf(conf))
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("can't parse %T,need a struct", conf)
	}
	for i := 0; i < v.NumField(); i++ {
		if !v.Type().Field(i).IsExported() {
			continue
		}
		field := reflect.Indirect(v.Field(i))
		if !field.IsValid() || !field.CanAddr() {
			continue
		}
		configurer, ok := field.Addr().Interface().(Configurer)
		if !ok {
			continue
		}
		if err := configurer.Parse(); err != nil {
			return fmt.Errorf("parse %s fail: %w", v.Type().Field(i).Name, err)
		}
	}
	return nil
}
