package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App             *App             `json:"app" yaml:"app"`
	Redis           *Redis           `json:"redis" yaml:"redis"`
	MySQL           *MySQL           `json:"mysql" yaml:"mysql"`
	Jwt             *Jwt             `json:"jwt" yaml:"jwt"`
	Server          *Server          `json:"server" yaml:"server"`
	Pay             *PayConfig       `json:"pay" yaml:"pay"`
	RocketMQ        *RocketMQConfig  `json:"rocketmq" yaml:"rocketmq"`
	WechatPayConfig *WechatPayConfig `json:"wechat_pay" yaml:"wechat_pay"`
}

type Server struct {
	Http    int `json:"http" yaml:"http"`
	Metrics int `json:"metrics" yaml:"metrics"`
}

type Jwt struct {
	Secret      string `json:"secret" yaml:"secret"`
	ExpireHours int    `json:"expire_hours" yaml:"expire_hours"`
}

func New(filename string) *Config {

	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	var conf Config
	if yaml.Unmarshal(content, &conf) != nil {
		panic(fmt.Sprintf("解析 config.yaml 读取错误: %v", err))
	}

	return &conf
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
