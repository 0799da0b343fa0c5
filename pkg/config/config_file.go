package config

import (
	"os"
	"strings"

	"github.com/decker502/cardtable/pkg/embedded"
)

// readConfigFile 读取配置文件
// 嵌入资源已初始化且路径以 "data/" 开头时从 embed.FS 读取，否则读取本地文件
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && strings.HasPrefix(strings.TrimPrefix(path, "./"), "data/") {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
