package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gridmind/gridkit/pipeline"
)

// Config 是服务级配置：模型目录、项目档案后端、规则文件，
// 外加（可选的）Pipeline 节点链。节点链省略时用标准五段链。
type Config struct {
	Models ModelsConfig `yaml:"models"`
	Store  StoreConfig  `yaml:"store"`
	Feast  FeastConfig  `yaml:"feast"`
	Rules  RulesConfig  `yaml:"rules"`

	Pipeline pipeline.Config `yaml:",inline"`
}

// ModelsConfig 模型工件配置。
type ModelsConfig struct {
	// Dir 模型工件目录（生产 Pipeline 与 Fallback 族共用）
	Dir string `yaml:"dir"`

	// TrainingCSV 自训练用的历史项目数据集路径（可选）
	TrainingCSV string `yaml:"training_csv"`
}

// StoreConfig 项目档案 KV 后端配置。
type StoreConfig struct {
	// Backend 后端类型：memory / redis / feast，默认 memory
	Backend string `yaml:"backend"`

	// Addr Redis 地址，例如 "localhost:6379"
	Addr string `yaml:"addr"`

	// DB Redis 库号
	DB int `yaml:"db"`
}

// FeastConfig Feast 在线存储配置（Backend 为 feast 时生效）。
type FeastConfig struct {
	// Endpoint Feature Server 端点，例如 "localhost:6565"
	Endpoint string `yaml:"endpoint"`

	// Project Feast 项目名称
	Project string `yaml:"project"`

	// FeatureView 项目属性特征视图名，默认 project_attributes
	FeatureView string `yaml:"feature_view"`
}

// RulesConfig 建议规则配置。
type RulesConfig struct {
	// Path 自定义规则 YAML 路径；为空时用内置规则集
	Path string `yaml:"path"`
}

// Load 从 YAML 文件加载服务配置。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// parseEndpoint 解析端点地址，返回 host 和 port（缺端口时 port 为 0）。
func parseEndpoint(endpoint string) (string, int) {
	endpoint = strings.TrimPrefix(endpoint, "grpc://")

	parts := strings.Split(endpoint, ":")
	if len(parts) == 2 {
		if port, err := strconv.Atoi(parts[1]); err == nil {
			return parts[0], port
		}
	}
	return endpoint, 0
}
