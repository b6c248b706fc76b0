package config

import (
	"fmt"
	"sync"

	"github.com/gridmind/gridkit/pipeline"
)

// NodeBuilder 与 pipeline.NodeBuilder 一致：根据 config 构建 Node。
// 扩展组件在 init 中调用 Register(typeName, builder) 即可被配置驱动。
type NodeBuilder = pipeline.NodeBuilder

var (
	extraBuilders   = make(map[string]NodeBuilder)
	extraBuildersMu sync.RWMutex
)

// Register 注册一种扩展 Node 的构建逻辑，供 DefaultFactory 使用。
// 内置类型（normalize / derive / infer / assess / recommend）不经过这里：
// 它们需要运行环境依赖，由 DefaultFactory 直接闭包注入。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	extraBuildersMu.Lock()
	defer extraBuildersMu.Unlock()
	extraBuilders[typeName] = builder
}

func snapshotBuilders() map[string]NodeBuilder {
	extraBuildersMu.RLock()
	defer extraBuildersMu.RUnlock()
	out := make(map[string]NodeBuilder, len(extraBuilders))
	for t, b := range extraBuilders {
		out[t] = b
	}
	return out
}

// ValidatePipelineConfig 校验 pipeline 配置中所有 node 类型均已注册；
// 若有未支持类型则返回包含已支持列表的错误。
func ValidatePipelineConfig(cfg *pipeline.Config, factory *pipeline.NodeFactory) error {
	if cfg == nil || factory == nil {
		return nil
	}
	supported := factory.Types()
	known := make(map[string]bool, len(supported))
	for _, t := range supported {
		known[t] = true
	}
	for _, nc := range cfg.Pipeline.Nodes {
		if nc.Type == "" {
			continue
		}
		if !known[nc.Type] {
			return fmt.Errorf("unsupported node type %q (supported: %v)", nc.Type, supported)
		}
	}
	return nil
}
