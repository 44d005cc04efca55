package common

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// LoadYAML 将data中的YAML配置加载到到结构体target中
func LoadYAML(data []byte, target interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("can't load yaml config from empty data")
	}
	return yaml.Unmarshal(data, target)
}

// LoadConfig 使用FileLoader加载configDir下的配置文件,见LoadConfigWithLoader
func LoadConfig(config Configurer, addonConfig string, configDir string, files ...string) error {
	return LoadConfigWithLoader(FileLoader, config, addonConfig, configDir, files...)
}

// LoadConfigWithLoader 依次将各个文件和addonConfig解码到同一个config中,
// 后解码的配置段覆盖先前的同名字段,addonConfig最后解码.只加载,不调用config.Parse
func LoadConfigWithLoader(loader ConfigLoader, config Configurer, addonConfig string, configDir string, files ...string) error {
	if loader == nil {
		return errors.New("no loader")
	}
	if len(files) == 0 && addonConfig == "" {
		return errInvalidConf
	}

	for _, file := range files {
		if configDir != "" && !filepath.IsAbs(file) {
			file = filepath.Join(configDir, file)
		}
		exist, err := loader.Exist(file)
		if err != nil {
			return err
		}
		if !exist {
			return fmt.Errorf("config file %s not found", file)
		}
		Infof("load conf from:%s", file)
		content, err := loader.Load(file)
		if err != nil {
			return err
		}
		if len(bytes.TrimSpace(content)) == 0 {
			Warnf("empty content in %s", file)
			continue
		}
		if err = LoadYAML(content, config); err != nil {
			return fmt.Errorf("load %s fail: %w", file, err)
		}
	}
	if addonConfig != "" {
		if err := LoadYAML([]byte(addonConfig), config); err != nil {
			return fmt.Errorf("load addon config fail: %w", err)
		}
	}
	return nil
}
