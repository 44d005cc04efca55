package common

import (
	"os"
	"strings"
)

// EnvString 取得环境变量name的值,未设置或为空白时返回def
func EnvString(name, def string) string {
	if v, ok := os.LookupEnv(name); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return def
}

// Hostname 取得当前进程所在主机(容器/Pod)的名称,失败时返回空字符串
func Hostname() string {
	name, err := os.Hostname()
	if err != nil {
		Warnf("get hostname fail,err:%v", err)
		return ""
	}
	return name
}
